package domain

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Injector rewrites named constant declarations in flattened source.
type Injector interface {
	// Apply replaces the value of every `constant <name> = <value>;` declaration whose
	// name appears in overrides. Names that do not occur are ignored. Values must be
	// single-line expressions without a `;` (see ValidateConstantValue); others are
	// skipped with a warning.
	Apply(text string, overrides map[string]string) string

	// Diff returns a unified diff between the text before and after Apply.
	Diff(before, after string) (string, error)
}

// ValidateConstantValue rejects values that would end the declaration early or
// span lines. Either would shift positions in the flattened text and make a second
// Apply rewrite something else.
func ValidateConstantValue(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("constant %s: value is empty", name)
	}

	if i := strings.IndexAny(value, ";\r\n"); i >= 0 {
		return fmt.Errorf("constant %s: value %q must not contain %q", name, value, value[i:i+1])
	}

	return nil
}

type injector struct{}

// NewInjector constructs an Injector.
func NewInjector() Injector {
	return &injector{}
}

// Apply rewrites declarations one name at a time, in sorted name order. Every
// replacement stays on its line, so positions in the text are unaffected.
func (i *injector) Apply(text string, overrides map[string]string) string {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}

	sort.Strings(names)

	out := text

	for _, name := range names {
		if err := ValidateConstantValue(name, overrides[name]); err != nil {
			slog.Warn("skipping constant override", "error", err)
			continue
		}

		pattern := constantDeclarationPattern(name)

		hits := len(pattern.FindAllStringIndex(out, -1))
		if hits == 0 {
			slog.Debug("constant override has no declaration", "name", name)
			continue
		}

		out = pattern.ReplaceAllLiteralString(out, "constant "+name+" = "+overrides[name]+";")
		slog.Debug("applied constant override", "name", name, "value", overrides[name], "declarations", hits)
	}

	return out
}

// Diff renders the change made by Apply as a unified diff with one line of context.
func (i *injector) Diff(before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "flattened",
		ToFile:   "flattened+constants",
		Context:  1,
	})
}
