package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"gopkg.in/yaml.v3"

	m "solflat.dev/pkg/solflat/internal/model"
)

// BuildCache stores compiled unit tables keyed by a fingerprint of everything the
// compiler sees, so an unchanged build does not invoke the compiler again.
type BuildCache interface {
	// Key fingerprints the final source text and the compiler settings. compiler
	// identifies the exact compiler build (path and version), not just its path.
	Key(source string, compiler string, optimize bool) string
	// Get returns the cached table for key; ok is false on a miss.
	Get(key string) (units m.UnitTable, ok bool, err error)
	// Put stores units under key.
	Put(key string, units m.UnitTable) error
}

// cachedUnit is the on-disk form of a CompiledUnit.
type cachedUnit struct {
	Name         string       `yaml:"name"`
	Interface    []m.ABIEntry `yaml:"interface"`
	RawInterface string       `yaml:"raw_interface"`
	Bytecode     string       `yaml:"bytecode"`
}

// LocalBuildCache keeps one YAML file per key inside a directory.
type LocalBuildCache struct {
	fs  SourceFSAdapter
	dir m.Path
}

// NewLocalBuildCache constructs a LocalBuildCache rooted at dir.
func NewLocalBuildCache(fs SourceFSAdapter, dir m.Path) *LocalBuildCache {
	return &LocalBuildCache{fs: fs, dir: dir}
}

// Key returns the hex SHA-256 of the compiler settings and source.
func (c *LocalBuildCache) Key(source string, compiler string, optimize bool) string {
	h := sha256.New()
	fmt.Fprintf(h, "compiler=%s\noptimize=%t\n", compiler, optimize)
	h.Write([]byte(source))

	return fmt.Sprintf("%x", h.Sum(nil))
}

func (c *LocalBuildCache) path(key string) m.Path {
	return c.fs.JoinPath(string(c.dir), key+".yaml")
}

// Get loads the table stored under key.
func (c *LocalBuildCache) Get(key string) (m.UnitTable, bool, error) {
	data, err := c.fs.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("read cache entry %s: %w", key, err)
	}

	var entries []cachedUnit
	if err := yaml.Unmarshal(data, &entries); err != nil {
		slog.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false, nil
	}

	units := make(m.UnitTable, len(entries))
	for _, e := range entries {
		units[e.Name] = m.CompiledUnit{
			Name:         e.Name,
			Interface:    e.Interface,
			RawInterface: e.RawInterface,
			Bytecode:     e.Bytecode,
		}
	}

	return units, true, nil
}

// Put writes units under key.
func (c *LocalBuildCache) Put(key string, units m.UnitTable) error {
	entries := make([]cachedUnit, 0, len(units))
	for _, name := range units.Names() {
		u := units[name]
		entries = append(entries, cachedUnit{
			Name:         u.Name,
			Interface:    u.Interface,
			RawInterface: u.RawInterface,
			Bytecode:     u.Bytecode,
		})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	if err := c.fs.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}

	return nil
}
