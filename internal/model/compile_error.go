package model

import (
	"fmt"
	"strings"
)

// UnknownLine is the line of a CompileError whose origin could not be resolved.
const UnknownLine = 0

// CompileError is a single error reported by the external compiler.
//
// RawLine and RawColumn are 1-based and index the flattened text the compiler saw.
// PositionSpan holds the byte offsets of the "<file>:<line>:<column>:" reference inside
// Message, or nil when the message carries no position.
// File, Line and Column are filled in by the remapper and point at the original unit.
type CompileError struct {
	Message      string
	RawLine      int
	RawColumn    int
	PositionSpan []int

	File     Path
	Line     int
	Column   int
	Resolved bool
}

// Error renders the message with its position rewritten to the original file when known.
func (e *CompileError) Error() string {
	if !e.Resolved {
		return "unresolved position: " + e.Message
	}

	position := fmt.Sprintf("%s:%d:%d:", e.File, e.Line, e.Column)

	if len(e.PositionSpan) != 2 || e.PositionSpan[1] > len(e.Message) {
		return position + " " + e.Message
	}

	return e.Message[:e.PositionSpan[0]] + position + e.Message[e.PositionSpan[1]:]
}

// Location returns "file:line:column" for resolved errors and "unknown" otherwise.
func (e *CompileError) Location() string {
	if !e.Resolved {
		return "unknown"
	}

	return fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
}

// Summary returns the first line of the message.
func (e *CompileError) Summary() string {
	first, _, _ := strings.Cut(strings.TrimSpace(e.Message), "\n")
	return first
}

// CompileFailure is returned when the compiler rejects the source. It carries every
// reported error; no compiled units accompany it.
type CompileFailure struct {
	Errors []*CompileError
}

func (f *CompileFailure) Error() string {
	if len(f.Errors) == 0 {
		return "compilation failed"
	}

	if len(f.Errors) == 1 {
		return "compilation failed: " + f.Errors[0].Error()
	}

	return fmt.Sprintf("compilation failed with %d errors: %s", len(f.Errors), f.Errors[0].Error())
}
