// Package myers implements a clean-room port of Eugene W. Myers' "An O(ND)
// Difference Algorithm and Its Variations" (1986): given two finite
// sequences and an equivalence predicate, it computes the shortest edit
// script relating them as a [patch.Patch].
//
// The algorithm walks the edit graph whose vertices (i, j) mean "consumed i
// of the original sequence, j of the revised sequence", builds a linked
// chain of path nodes as it goes, and then walks that chain backward once to
// emit deltas. It does not stream and does not retain state between calls:
// a [Diff] call is a pure function of its inputs.
package myers

import (
	"errors"
	"strings"

	"github.com/ibrahimAlii/java-diff-utils/patch"
)

// ErrDifferentiationFailed is returned when the outer d-loop exhausts its
// budget (N+M+1 rounds) without the path reaching the sink (N, M). Myers'
// proof guarantees this cannot happen for finite inputs; seeing this error
// indicates a bug in this package, not in the caller's inputs.
var ErrDifferentiationFailed = errors.New("myers: could not find a diff path")

// ErrInvariantViolation is returned when path reconstruction encounters a
// snake node where a diff node was expected. The anchor node an edit run
// leads back to may be of either kind and is not checked. Like
// ErrDifferentiationFailed, this signals an internal bug, not bad input.
var ErrInvariantViolation = errors.New("myers: bad diff path")

// Diff computes the shortest edit script transforming original into revised
// under the given equivalence predicate, returning it as a [patch.Patch].
// Neither original nor revised may be nil.
func Diff[T any](original, revised []T, eq func(a, b T) bool) (*patch.Patch[T], error) {
	if original == nil || revised == nil {
		return nil, patch.ErrNilSequence
	}

	path, err := buildPath(original, revised, eq)
	if err != nil {
		return nil, err
	}
	return buildRevision(path, original, revised)
}

// DiffComparable is [Diff] with the equivalence predicate defaulting to Go's
// built-in == over comparable element types.
func DiffComparable[T comparable](original, revised []T) (*patch.Patch[T], error) {
	return Diff(original, revised, func(a, b T) bool { return a == b })
}

// DiffLines splits original and revised on "\n", keeping each line's
// trailing newline (the last line lacks one only when the input has no
// final newline, so the two cases stay distinguishable), and diffs the
// resulting lines with [DiffComparable].
func DiffLines(original, revised string) (*patch.Patch[string], error) {
	return DiffComparable(SplitLines(original), SplitLines(revised))
}

// SplitLines splits s into lines the same way [DiffLines] does, keeping each
// line's trailing "\n"; the last line lacks one only when s does not end in
// a newline. Callers that need to reconstruct
// unified-diff hunk context around a [patch.Patch] built by [DiffLines] use
// this to recover the exact same line slice DiffLines diffed.
func SplitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	// SplitAfter keeps the delimiter on each element. Input ending in "\n"
	// produces a trailing empty string that is not a real line.
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// buildPath computes the minimum diffpath expressing the differences
// between orig and rev, per Myers' algorithm. It returns the terminal node
// of the path; callers walk it backward via buildRevision.
func buildPath[T any](orig, rev []T, eq func(a, b T) bool) (*pathNode, error) {
	n := len(orig)
	m := len(rev)

	max := n + m + 1
	size := 1 + 2*max
	middle := size / 2
	diagonal := make([]*pathNode, size)

	diagonal[middle+1] = newSnake(0, -1, nil)
	for d := 0; d < max; d++ {
		for k := -d; k <= d; k += 2 {
			kmiddle := middle + k
			kplus := kmiddle + 1
			kminus := kmiddle - 1

			var i int
			var prev *pathNode
			if k == -d || (k != d && diagonal[kminus].i < diagonal[kplus].i) {
				i = diagonal[kplus].i
				prev = diagonal[kplus]
			} else {
				i = diagonal[kminus].i + 1
				prev = diagonal[kminus]
			}

			diagonal[kminus] = nil // no longer used this pass

			j := i - k

			node := newDiffNode(i, j, prev)

			// orig and rev are zero-based but the algorithm is one-based;
			// that's why there is no +1 when indexing the sequences.
			for i < n && j < m && eq(orig[i], rev[j]) {
				i++
				j++
			}
			if i > node.i {
				node = newSnake(i, j, node)
			}

			diagonal[kmiddle] = node

			if i >= n && j >= m {
				return diagonal[kmiddle], nil
			}
		}
		diagonal[middle+d-1] = nil
	}

	// According to Myers, this cannot happen.
	return nil, ErrDifferentiationFailed
}

// buildRevision walks path backward, emitting one delta per run of edit
// steps bounded by the surrounding snake anchors, and returns the assembled
// patch with deltas in ascending position order. A nil path fails with
// [patch.ErrNilSequence].
func buildRevision[T any](path *pathNode, orig, rev []T) (*patch.Patch[T], error) {
	if path == nil {
		return nil, patch.ErrNilSequence
	}
	var reversed []patch.Delta[T]

	if path.isSnake() {
		path = path.prev
	}
	for path != nil && path.prev != nil && path.prev.j >= 0 {
		if path.isSnake() {
			return nil, ErrInvariantViolation
		}
		i := path.i
		j := path.j

		path = path.prev
		ianchor := path.i
		janchor := path.j

		original := patch.NewChunk(ianchor, copyRange(orig, ianchor, i))
		revised := patch.NewChunk(janchor, copyRange(rev, janchor, j))
		reversed = append(reversed, patch.NewDelta(original, revised))

		if path.isSnake() {
			path = path.prev
		}
	}

	p := patch.NewPatch[T]()
	for i := len(reversed) - 1; i >= 0; i-- {
		p.AddDelta(reversed[i])
	}
	return p, nil
}

func copyRange[T any](s []T, from, to int) []T {
	out := make([]T, to-from)
	copy(out, s[from:to])
	return out
}
