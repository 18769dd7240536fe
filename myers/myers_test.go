package myers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimAlii/java-diff-utils/myers"
	"github.com/ibrahimAlii/java-diff-utils/patch"
)

func TestDiffComparable(t *testing.T) {
	tests := map[string]struct {
		a, b  []string
		check func(t *testing.T, p *patch.Patch[string])
	}{
		"BothEmpty": {
			a: []string{}, b: []string{},
			check: func(t *testing.T, p *patch.Patch[string]) {
				assert.Empty(t, p.Deltas())
			},
		},
		"S1_Equal": {
			a: []string{"a", "b", "c"}, b: []string{"a", "b", "c"},
			check: func(t *testing.T, p *patch.Patch[string]) {
				assert.Empty(t, p.Deltas())
			},
		},
		"S2_Insert": {
			a: []string{}, b: []string{"x"},
			check: func(t *testing.T, p *patch.Patch[string]) {
				deltas := p.Deltas()
				require.Len(t, deltas, 1)
				d := deltas[0]
				assert.Equal(t, patch.Insert, d.Type())
				assert.Equal(t, 0, d.Original().Position())
				assert.Equal(t, 0, d.Revised().Position())
				assert.Equal(t, []string{"x"}, d.Revised().Lines())
			},
		},
		"S3_Delete": {
			a: []string{"x"}, b: []string{},
			check: func(t *testing.T, p *patch.Patch[string]) {
				deltas := p.Deltas()
				require.Len(t, deltas, 1)
				d := deltas[0]
				assert.Equal(t, patch.Delete, d.Type())
				assert.Equal(t, 0, d.Original().Position())
				assert.Equal(t, []string{"x"}, d.Original().Lines())
			},
		},
		"S4_Change": {
			a: []string{"a", "b", "c", "d"}, b: []string{"a", "x", "c", "d"},
			check: func(t *testing.T, p *patch.Patch[string]) {
				deltas := p.Deltas()
				require.Len(t, deltas, 1)
				d := deltas[0]
				assert.Equal(t, patch.Change, d.Type())
				assert.Equal(t, 1, d.Original().Position())
				assert.Equal(t, []string{"b"}, d.Original().Lines())
				assert.Equal(t, 1, d.Revised().Position())
				assert.Equal(t, []string{"x"}, d.Revised().Lines())
			},
		},
		"CompletelyDifferent": {
			a: []string{"A", "B"}, b: []string{"C", "D"},
			check: func(t *testing.T, p *patch.Patch[string]) {
				deltas := p.Deltas()
				require.Len(t, deltas, 1)
				assert.Equal(t, patch.Change, deltas[0].Type())
			},
		},
		"PaperExample": {
			a: []string{"A", "B", "C", "A", "B", "B", "A"},
			b: []string{"C", "B", "A", "B", "A", "C"},
			check: func(t *testing.T, p *patch.Patch[string]) {
				got := p.Restore([]string{"A", "B", "C", "A", "B", "B", "A"})
				assert.Equal(t, []string{"C", "B", "A", "B", "A", "C"}, got)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := myers.DiffComparable(tt.a, tt.b)
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestDiffNilSequence(t *testing.T) {
	_, err := myers.Diff[string](nil, []string{"a"}, func(a, b string) bool { return a == b })
	require.ErrorIs(t, err, patch.ErrNilSequence)

	_, err = myers.Diff[string]([]string{"a"}, nil, func(a, b string) bool { return a == b })
	require.ErrorIs(t, err, patch.ErrNilSequence)
}

// reconstruction is §9 invariant 1: applying the patch to A reproduces B.
func TestReconstructionInvariant(t *testing.T) {
	cases := [][2][]string{
		{{}, {}},
		{{"a"}, {}},
		{{}, {"a"}},
		{{"a", "b", "c"}, {"a", "b", "c"}},
		{{"a", "b", "c", "d"}, {"a", "x", "c", "d"}},
		{{"A", "B", "C", "A", "B", "B", "A"}, {"C", "B", "A", "B", "A", "C"}},
		{{"line1", "line2", "line3"}, {"line1", "modified", "line3"}},
		{{"x", "y", "z"}, {"a", "b", "c", "d"}},
	}
	for _, c := range cases {
		a, b := c[0], c[1]
		p, err := myers.DiffComparable(a, b)
		require.NoError(t, err)
		assert.Equal(t, b, p.Restore(a))
	}
}

// §9 invariant 3: ordering.
func TestOrderingInvariant(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e", "f", "g"}
	b := []string{"a", "x", "c", "y", "e", "z", "g"}
	p, err := myers.DiffComparable(a, b)
	require.NoError(t, err)

	deltas := p.Deltas()
	for i := 1; i < len(deltas); i++ {
		prev := deltas[i-1].Original()
		cur := deltas[i].Original()
		assert.GreaterOrEqual(t, cur.Position(), prev.Position()+prev.Size())
	}
}

// §9 invariant 5: identity.
func TestIdentityInvariant(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	p, err := myers.DiffComparable(a, a)
	require.NoError(t, err)
	assert.Empty(t, p.Deltas())
}

// §9 invariant 7: determinism.
func TestDeterminismInvariant(t *testing.T) {
	a := []string{"A", "B", "C", "A", "B", "B", "A"}
	b := []string{"C", "B", "A", "B", "A", "C"}

	p1, err := myers.DiffComparable(a, b)
	require.NoError(t, err)
	p2, err := myers.DiffComparable(a, b)
	require.NoError(t, err)
	assert.Equal(t, p1.Deltas(), p2.Deltas())
}

// §9 invariant 6: the minimum edit cost is symmetric even though the
// scripts themselves need not be inverses of one another.
func TestCostSymmetryInvariant(t *testing.T) {
	a := []string{"A", "B", "C", "A", "B", "B", "A"}
	b := []string{"C", "B", "A", "B", "A", "C"}

	forward, err := myers.DiffComparable(a, b)
	require.NoError(t, err)
	backward, err := myers.DiffComparable(b, a)
	require.NoError(t, err)

	assert.Equal(t, cost(forward), cost(backward))
}

func cost[T any](p *patch.Patch[T]) int {
	var d int
	for _, delta := range p.Deltas() {
		d += delta.Original().Size() + delta.Revised().Size()
	}
	return d
}

func TestDiffLines(t *testing.T) {
	p, err := myers.DiffLines("line1\nline2\nline3\n", "line1\nmodified\nline3\n")
	require.NoError(t, err)
	got := p.Restore([]string{"line1\n", "line2\n", "line3\n"})
	assert.Equal(t, []string{"line1\n", "modified\n", "line3\n"}, got)
}

func TestDiffLinesNoTrailingNewline(t *testing.T) {
	p, err := myers.DiffLines("hello", "world")
	require.NoError(t, err)
	deltas := p.Deltas()
	require.Len(t, deltas, 1)
	assert.Equal(t, patch.Change, deltas[0].Type())
	assert.Equal(t, []string{"hello"}, deltas[0].Original().Lines())
	assert.Equal(t, []string{"world"}, deltas[0].Revised().Lines())
}
