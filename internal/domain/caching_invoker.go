package domain

import (
	"context"
	"log/slog"
	"sync"

	"solflat.dev/pkg/solflat/internal/adapter"
	m "solflat.dev/pkg/solflat/internal/model"
)

type cachingInvoker struct {
	inner    Invoker
	cache    adapter.BuildCache
	compiler adapter.CompilerAdapter
	optimize bool

	once     sync.Once
	identity string
	idErr    error
}

// NewCachingInvoker wraps inner with a build cache. Keys include the compiler's
// reported version, so upgrading the compiler in place invalidates old entries. Only
// successful compilations are stored. Cache failures are logged and otherwise ignored.
func NewCachingInvoker(inner Invoker, cache adapter.BuildCache, compiler adapter.CompilerAdapter, optimize bool) Invoker {
	return &cachingInvoker{
		inner:    inner,
		cache:    cache,
		compiler: compiler,
		optimize: optimize,
	}
}

// compilerIdentity is the binary path plus its version output, read once.
func (c *cachingInvoker) compilerIdentity(ctx context.Context) (string, error) {
	c.once.Do(func() {
		version, err := c.compiler.Version(ctx)
		if err != nil {
			c.idErr = err
			return
		}

		c.identity = c.compiler.Binary() + "\n" + version
	})

	return c.identity, c.idErr
}

func (c *cachingInvoker) Compile(ctx context.Context, text string) (m.UnitTable, error) {
	identity, err := c.compilerIdentity(ctx)
	if err != nil {
		slog.Warn("compiler version unknown, build cache bypassed", "compiler", c.compiler.Binary(), "error", err)
		return c.inner.Compile(ctx, text)
	}

	key := c.cache.Key(text, identity, c.optimize)

	units, ok, err := c.cache.Get(key)
	if err != nil {
		slog.Warn("build cache lookup failed", "key", key, "error", err)
	}

	if ok {
		slog.Info("using cached compilation", "key", key, "units", len(units))
		return units, nil
	}

	units, err = c.inner.Compile(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(key, units); err != nil {
		slog.Warn("failed to store compilation in build cache", "key", key, "error", err)
	}

	return units, nil
}
