// Package model defines the data structures shared by the flatten, compile and remap stages.
package model

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// SourceUnit represents one source file as read from disk, before any processing.
type SourceUnit struct {
	Path Path // canonical absolute path
	Text string
}

// VisitedSet records the canonical paths already flattened during one top-level
// resolution. A set belongs to exactly one resolution and is never shared.
type VisitedSet map[Path]struct{}

// NewVisitedSet returns an empty VisitedSet.
func NewVisitedSet() VisitedSet {
	return make(VisitedSet)
}

// Has reports whether path was already visited.
func (v VisitedSet) Has(path Path) bool {
	_, ok := v[path]
	return ok
}

// Visit marks path as visited and reports whether it was new.
func (v VisitedSet) Visit(path Path) bool {
	if v.Has(path) {
		return false
	}

	v[path] = struct{}{}

	return true
}

// Len returns the number of visited paths.
func (v VisitedSet) Len() int {
	return len(v)
}
