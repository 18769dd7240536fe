// Package patch implements the shared edit-script data model: a [Chunk] is a
// contiguous run of elements from one side of a comparison, a [Delta] pairs an
// original and a revised chunk into one localized edit, and a [Patch] is the
// ordered, non-overlapping sequence of deltas that relates two sequences.
//
// Neither the Myers diff engine nor the unified-diff parser imports the other;
// both build their result on top of this package.
package patch

// Chunk is a contiguous run of elements drawn from one side of a comparison.
// Position is the 0-based index into the originating sequence of the chunk's
// first element. For an empty chunk, Position is the notional insertion
// point rather than the index of a real element.
type Chunk[T any] struct {
	position int
	lines    []T
}

// NewChunk constructs a [Chunk] starting at position with the given lines.
// lines is not copied; callers must not mutate it afterwards.
func NewChunk[T any](position int, lines []T) Chunk[T] {
	return Chunk[T]{position: position, lines: lines}
}

// Position returns the 0-based index of the chunk's first element in its
// originating sequence.
func (c Chunk[T]) Position() int {
	return c.position
}

// Size returns the number of elements in the chunk.
func (c Chunk[T]) Size() int {
	return len(c.lines)
}

// Lines returns the chunk's elements. The returned slice must not be
// mutated by the caller.
func (c Chunk[T]) Lines() []T {
	return c.lines
}
