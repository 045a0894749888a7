package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "solflat.dev/pkg/solflat/internal/model"
)

func TestFindImportTargets(t *testing.T) {
	text := "pragma solidity ^0.4.18;\n" +
		"import \"./Math.sol\";\n" +
		"import \"../lib/Owned.sol\";\n" +
		"  import \"./Indented.sol\";\n" +
		"import './Single.sol';\n" +
		"contract Token {}\n"

	assert.Equal(t, []string{"./Math.sol", "../lib/Owned.sol"}, findImportTargets(text))
	assert.Empty(t, findImportTargets("contract Empty {}\n"))
}

func TestStripImportDirectives_KeepsLines(t *testing.T) {
	text := "import \"./Math.sol\";\ncontract Token {}\nimport \"./Owned.sol\";\n"

	got := stripImportDirectives(text)

	assert.Equal(t, "\ncontract Token {}\n\n", got)
}

func TestBoundaryMarker_RoundTrip(t *testing.T) {
	marker := boundaryMarker(m.Path("/src/contracts/Token.sol"))
	assert.Equal(t, "//File: /src/contracts/Token.sol", marker)

	path, ok := matchBoundaryMarker(marker)
	require.True(t, ok)
	assert.Equal(t, m.Path("/src/contracts/Token.sol"), path)

	_, ok = matchBoundaryMarker("// File: not a marker")
	assert.False(t, ok)
}

func TestConstantDeclarationPattern(t *testing.T) {
	pattern := constantDeclarationPattern("RATE")

	assert.True(t, pattern.MatchString("uint constant RATE = 1;"))
	assert.False(t, pattern.MatchString("uint constant RATE_MAX = 1;"))
	assert.False(t, pattern.MatchString("uint constant RATE = 1"), "a declaration needs its semicolon on the same line")
	assert.False(t, pattern.MatchString("uint constant RATE = 1\n;"))

	special := constantDeclarationPattern("A.B")
	assert.False(t, special.MatchString("uint constant AxB = 1;"), "names are matched literally")
}

func TestMatchErrorPosition(t *testing.T) {
	pos, ok := matchErrorPosition("<stdin>:13:7: Error: Undeclared identifier.\n    foo();\n")
	require.True(t, ok)
	assert.Equal(t, 13, pos.line)
	assert.Equal(t, 7, pos.column)
	assert.Equal(t, []int{0, len("<stdin>:13:7:")}, pos.span)

	pos, ok = matchErrorPosition(":4:1: ParserError: Expected token")
	require.True(t, ok)
	assert.Equal(t, 4, pos.line)
	assert.Equal(t, 1, pos.column)

	_, ok = matchErrorPosition("Error: Source file requires different compiler version")
	assert.False(t, ok)
}
