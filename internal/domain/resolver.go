package domain

import (
	"context"
	"log/slog"
	"strings"

	"solflat.dev/pkg/solflat/internal/adapter"
	m "solflat.dev/pkg/solflat/internal/model"
)

// Resolver flattens a source unit and everything it imports into one text.
type Resolver interface {
	// Resolve returns the flattened text for path. visited is owned by the caller's
	// top-level resolution and is updated with every unit that gets included; a path
	// already in visited contributes nothing.
	Resolve(ctx context.Context, path m.Path, visited m.VisitedSet) (string, error)
}

type resolver struct {
	fs adapter.SourceFSAdapter
}

// NewResolver constructs a Resolver reading units through fs.
func NewResolver(fs adapter.SourceFSAdapter) Resolver {
	return &resolver{fs: fs}
}

// Resolve flattens path depth-first. Dependencies come first, in import order; each
// unit's own body follows them, introduced by its boundary marker line. Import lines
// are blanked rather than removed so body line k is line k of the original file.
func (r *resolver) Resolve(ctx context.Context, path m.Path, visited m.VisitedSet) (string, error) {
	canonical, err := r.fs.Canonical(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}

	return r.resolve(ctx, canonical, visited, nil)
}

func (r *resolver) resolve(ctx context.Context, path m.Path, visited m.VisitedSet, chain []m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !visited.Visit(path) {
		slog.Debug("unit already flattened", "path", path)
		return "", nil
	}

	unit, err := r.load(path)
	if err != nil {
		slog.Error("failed to read source unit", "path", path, "error", err)
		return "", &IOError{Path: path, ImportedBy: chain, Err: err}
	}

	targets := findImportTargets(unit.Text)
	body := stripImportDirectives(unit.Text)

	// Full slice expression so sibling imports never share a backing array.
	chain = append(chain[:len(chain):len(chain)], path)

	var out strings.Builder

	for _, target := range targets {
		dep, err := r.fs.Canonical(r.fs.JoinPath(string(r.fs.Dir(path)), target))
		if err != nil {
			return "", &IOError{Path: m.Path(target), ImportedBy: chain, Err: err}
		}

		slog.Debug("resolving import", "from", path, "import", target, "path", dep)

		text, err := r.resolve(ctx, dep, visited, chain)
		if err != nil {
			return "", err
		}

		out.WriteString(text)
	}

	if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
		out.WriteString("\n")
	}

	out.WriteString(boundaryMarker(path))
	out.WriteString("\n")
	out.WriteString(body)

	return out.String(), nil
}

func (r *resolver) load(path m.Path) (m.SourceUnit, error) {
	content, err := r.fs.ReadFile(path)
	if err != nil {
		return m.SourceUnit{}, err
	}

	return m.SourceUnit{Path: path, Text: string(content)}, nil
}
