package domain

import (
	"log/slog"
	"strings"

	m "solflat.dev/pkg/solflat/internal/model"
)

// Remapper translates compiler error positions in flattened text back to the
// original units.
type Remapper interface {
	// Remap rewrites File, Line and Column of every error in place. Errors whose
	// origin cannot be found are left unresolved; they never fail the others.
	Remap(text string, errs []*m.CompileError)
}

type remapper struct{}

// NewRemapper constructs a Remapper.
func NewRemapper() Remapper {
	return &remapper{}
}

func (r *remapper) Remap(text string, errs []*m.CompileError) {
	lines := strings.Split(text, "\n")

	for _, ce := range errs {
		remapError(lines, ce)
	}
}

// remapError walks backward from the line above the error to the nearest boundary
// marker. A marker found k lines up names the unit, and k is the local line.
func remapError(lines []string, ce *m.CompileError) {
	ce.File = ""
	ce.Line = m.UnknownLine
	ce.Column = ce.RawColumn
	ce.Resolved = false

	for k := 1; k < ce.RawLine; k++ {
		idx := ce.RawLine - 1 - k
		if idx >= len(lines) {
			continue
		}

		if file, ok := matchBoundaryMarker(lines[idx]); ok {
			ce.File = file
			ce.Line = k
			ce.Resolved = true

			return
		}
	}

	slog.Debug("compile error position not resolved", "line", ce.RawLine, "column", ce.RawColumn)
}
