// Package controller provides output adapters for displaying build progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "solflat.dev/pkg/solflat/internal/model"
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	entries []m.Path
}

// WithEntries announces the entry files of a build so they can be listed as pending
// before work on them starts.
func WithEntries(entries []m.Path) StartOption {
	return func(c *StartConfig) {
		c.entries = append([]m.Path(nil), entries...)
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines the interface for reporting build progress.
// Implementations can use different output methods (simple text, TUI, etc).
// Display methods may be called concurrently for different entries.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayBuildStarted(ctx context.Context, entry m.Path)
	DisplayBuildSucceeded(ctx context.Context, entry m.Path, artifact m.Path, units m.UnitTable)
	DisplayCompileErrors(ctx context.Context, entry m.Path, errs []*m.CompileError)
	DisplayBuildFailed(ctx context.Context, entry m.Path, err error)
	DisplayFlattened(ctx context.Context, text string) error
	DisplayDiff(ctx context.Context, diff string) error
}

// NewUI returns the interactive TUI when output is a terminal and the SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
