package domain

import (
	"fmt"
	"strings"

	m "solflat.dev/pkg/solflat/internal/model"
)

// IOError reports a source unit that could not be read. It aborts the whole
// resolution. ImportedBy lists the chain of units that led to Path, outermost first.
type IOError struct {
	Path       m.Path
	ImportedBy []m.Path
	Err        error
}

func (e *IOError) Error() string {
	if len(e.ImportedBy) == 0 {
		return fmt.Sprintf("read %s: %v", e.Path, e.Err)
	}

	chain := make([]string, 0, len(e.ImportedBy))
	for _, p := range e.ImportedBy {
		chain = append(chain, string(p))
	}

	return fmt.Sprintf("read %s (imported via %s): %v", e.Path, strings.Join(chain, " -> "), e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
