package domain

import (
	"regexp"
	"strconv"

	m "solflat.dev/pkg/solflat/internal/model"
)

// The grammars below are deliberately narrow. Each pattern is single-line and
// anchored as described; anything else is ordinary source text.

// importDirectivePattern matches `import "<path>";` at the very start of a line.
// Multi-line directives and other quoting styles are not recognized.
var importDirectivePattern = regexp.MustCompile(`(?m)^import "(.*)";`)

// boundaryMarkerPrefix starts every marker line the resolver emits.
const boundaryMarkerPrefix = "//File: "

var boundaryMarkerPattern = regexp.MustCompile(`//File: (.*)`)

// errorPositionPattern matches the `:<line>:<column>:` reference in compiler
// messages, together with the file token in front of it (e.g. `<stdin>`).
var errorPositionPattern = regexp.MustCompile(`[^\s:]*:([0-9]+):([0-9]+):`)

// findImportTargets returns the target of every import directive in text, in
// source order, exactly as written.
func findImportTargets(text string) []string {
	matches := importDirectivePattern.FindAllStringSubmatch(text, -1)

	targets := make([]string, 0, len(matches))
	for _, match := range matches {
		targets = append(targets, match[1])
	}

	return targets
}

// stripImportDirectives removes every import directive but keeps the line it was on,
// so line numbers inside the unit are unchanged.
func stripImportDirectives(text string) string {
	return importDirectivePattern.ReplaceAllLiteralString(text, "")
}

// boundaryMarker renders the marker line for path, without a trailing newline.
func boundaryMarker(path m.Path) string {
	return boundaryMarkerPrefix + string(path)
}

// matchBoundaryMarker reports whether line is a marker and which unit it names.
func matchBoundaryMarker(line string) (m.Path, bool) {
	sub := boundaryMarkerPattern.FindStringSubmatch(line)
	if sub == nil {
		return "", false
	}

	return m.Path(sub[1]), true
}

// constantDeclarationPattern matches `constant <name> = <value>;` for one name.
// The value is everything up to the first semicolon on the same line.
func constantDeclarationPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\bconstant ` + regexp.QuoteMeta(name) + ` = [^;\n]*;`)
}

// errorPosition is the raw position extracted from a compiler message.
type errorPosition struct {
	line   int
	column int
	span   []int
}

// matchErrorPosition extracts the first `:<line>:<column>:` position in message.
func matchErrorPosition(message string) (errorPosition, bool) {
	loc := errorPositionPattern.FindStringSubmatchIndex(message)
	if loc == nil {
		return errorPosition{}, false
	}

	line, err := strconv.Atoi(message[loc[2]:loc[3]])
	if err != nil {
		return errorPosition{}, false
	}

	column, err := strconv.Atoi(message[loc[4]:loc[5]])
	if err != nil {
		return errorPosition{}, false
	}

	return errorPosition{line: line, column: column, span: []int{loc[0], loc[1]}}, true
}
