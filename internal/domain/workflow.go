// Package domain implements the flatten, inject, compile and remap pipeline.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"solflat.dev/pkg/solflat/internal/adapter"
	"solflat.dev/pkg/solflat/internal/controller"
	m "solflat.dev/pkg/solflat/internal/model"
)

// BuildArgs holds the inputs of a build.
type BuildArgs struct {
	Entries   []m.Path
	OutDir    m.Path
	Format    adapter.ArtifactFormat
	Constants map[string]string
	Threads   int
}

// FlattenArgs holds the inputs of a flatten preview.
type FlattenArgs struct {
	Entry     m.Path
	Constants map[string]string
	Output    m.Path // when set, the text is written here instead of displayed
	ShowDiff  bool   // display the constant injection as a diff instead of the text
}

// Workflow drives the pipeline for the CLI commands.
type Workflow interface {
	Build(ctx context.Context, args BuildArgs) error
	Flatten(ctx context.Context, args FlattenArgs) error
}

type workflow struct {
	controller.UI
	Resolver
	Injector
	Invoker
	Remapper

	fs        adapter.SourceFSAdapter
	artifacts adapter.ArtifactStore
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	artifacts adapter.ArtifactStore,
	ui controller.UI,
	resolver Resolver,
	injector Injector,
	invoker Invoker,
	remapper Remapper,
) Workflow {
	return &workflow{
		UI:        ui,
		Resolver:  resolver,
		Injector:  injector,
		Invoker:   invoker,
		Remapper:  remapper,
		fs:        fs,
		artifacts: artifacts,
	}
}

// Build compiles every entry into its own artifact. Entries are independent: each
// gets its own VisitedSet and one failing entry does not stop the others. The
// returned error joins every entry's failure.
func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	if len(args.Entries) == 0 {
		return errors.New("no entry files given")
	}

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	if err := checkArtifactCollisions(args); err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithEntries(args.Entries)); err != nil {
		slog.Error("Failed to start build UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	var (
		mu       sync.Mutex
		failures []error
	)

	group := new(errgroup.Group)
	group.SetLimit(threads)

	for _, entry := range args.Entries {
		entry := entry
		group.Go(func() error {
			if err := w.buildEntry(ctx, entry, args); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", entry, err))
				mu.Unlock()
			}

			return nil
		})
	}

	_ = group.Wait()

	return errors.Join(failures...)
}

// checkArtifactCollisions fails when two entries map to the same artifact path,
// since the later write would silently replace the earlier one.
func checkArtifactCollisions(args BuildArgs) error {
	owners := make(map[m.Path]m.Path, len(args.Entries))

	for _, entry := range args.Entries {
		artifact := adapter.ArtifactPath(args.OutDir, entry, args.Format)

		if other, ok := owners[artifact]; ok {
			if other == entry {
				return fmt.Errorf("entry %s is listed more than once", entry)
			}

			return fmt.Errorf("entries %s and %s would both write %s", other, entry, artifact)
		}

		owners[artifact] = entry
	}

	return nil
}

func (w *workflow) buildEntry(ctx context.Context, entry m.Path, args BuildArgs) error {
	w.DisplayBuildStarted(ctx, entry)

	text, _, err := w.prepare(ctx, entry, args.Constants)
	if err != nil {
		w.DisplayBuildFailed(ctx, entry, err)
		return err
	}

	if err := ctx.Err(); err != nil {
		w.DisplayBuildFailed(ctx, entry, err)
		return err
	}

	units, err := w.Compile(ctx, text)
	if err != nil {
		var failure *m.CompileFailure
		if errors.As(err, &failure) {
			w.Remap(text, failure.Errors)
			slog.Info("compilation failed", "entry", entry, "errors", len(failure.Errors))
			w.DisplayCompileErrors(ctx, entry, failure.Errors)

			return err
		}

		slog.Error("compiler invocation failed", "entry", entry, "error", err)
		w.DisplayBuildFailed(ctx, entry, err)

		return err
	}

	if err := ctx.Err(); err != nil {
		w.DisplayBuildFailed(ctx, entry, err)
		return err
	}

	artifact := adapter.ArtifactPath(args.OutDir, entry, args.Format)
	if err := w.artifacts.Save(artifact, units, args.Format); err != nil {
		slog.Error("failed to write artifact", "entry", entry, "artifact", artifact, "error", err)
		w.DisplayBuildFailed(ctx, entry, err)

		return err
	}

	slog.Info("built entry", "entry", entry, "artifact", artifact, "units", len(units))
	w.DisplayBuildSucceeded(ctx, entry, artifact, units)

	return nil
}

// prepare resolves entry with a fresh VisitedSet and applies constant overrides.
// It returns the final text and the text before injection.
func (w *workflow) prepare(ctx context.Context, entry m.Path, constants map[string]string) (string, string, error) {
	flattened, err := w.Resolve(ctx, entry, m.NewVisitedSet())
	if err != nil {
		return "", "", err
	}

	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	return w.Apply(flattened, constants), flattened, nil
}

// Flatten resolves and injects one entry, then displays, writes or diffs the result.
func (w *workflow) Flatten(ctx context.Context, args FlattenArgs) error {
	text, flattened, err := w.prepare(ctx, args.Entry, args.Constants)
	if err != nil {
		slog.Error("Failed to flatten", "entry", args.Entry, "error", err)
		return err
	}

	if args.ShowDiff {
		diff, err := w.Diff(flattened, text)
		if err != nil {
			return fmt.Errorf("diff: %w", err)
		}

		return w.DisplayDiff(ctx, diff)
	}

	if args.Output != "" {
		if err := w.fs.WriteFile(args.Output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args.Output, err)
		}

		slog.Info("wrote flattened source", "entry", args.Entry, "output", args.Output)

		return nil
	}

	return w.DisplayFlattened(ctx, text)
}
