package patch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrahimAlii/java-diff-utils/patch"
)

func TestDeltaType(t *testing.T) {
	tests := map[string]struct {
		original, revised patch.Chunk[string]
		want              patch.DeltaType
	}{
		"Insert": {
			original: patch.NewChunk(0, []string{}),
			revised:  patch.NewChunk(0, []string{"a"}),
			want:     patch.Insert,
		},
		"Delete": {
			original: patch.NewChunk(0, []string{"a"}),
			revised:  patch.NewChunk(0, []string{}),
			want:     patch.Delete,
		},
		"Change": {
			original: patch.NewChunk(0, []string{"a"}),
			revised:  patch.NewChunk(0, []string{"b"}),
			want:     patch.Change,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := patch.NewDelta(tt.original, tt.revised)
			assert.Equal(t, tt.want, d.Type())
		})
	}
}

func TestDeltaTypeString(t *testing.T) {
	assert.Equal(t, "Insert", patch.Insert.String())
	assert.Equal(t, "Delete", patch.Delete.String())
	assert.Equal(t, "Change", patch.Change.String())
}

func TestPatchAddDeltaPreservesOrder(t *testing.T) {
	p := patch.NewPatch[string]()
	d1 := patch.NewDelta(patch.NewChunk(0, []string{"a"}), patch.NewChunk(0, []string{"x"}))
	d2 := patch.NewDelta(patch.NewChunk(5, []string{"b"}), patch.NewChunk(5, []string{"y"}))

	p.AddDelta(d1)
	p.AddDelta(d2)

	deltas := p.Deltas()
	require.Len(t, deltas, 2)
	assert.Equal(t, 0, deltas[0].Original().Position())
	assert.Equal(t, 5, deltas[1].Original().Position())
}

func TestDeltasReturnsDefensiveCopy(t *testing.T) {
	p := patch.NewPatch[string]()
	p.AddDelta(patch.NewDelta(patch.NewChunk(0, []string{"a"}), patch.NewChunk(0, []string{"x"})))

	deltas := p.Deltas()
	deltas[0] = patch.NewDelta(patch.NewChunk(9, []string{"z"}), patch.NewChunk(9, []string{"z"}))

	assert.Equal(t, 0, p.Deltas()[0].Original().Position())
}

func TestRestore(t *testing.T) {
	p := patch.NewPatch[string]()
	p.AddDelta(patch.NewDelta(
		patch.NewChunk(1, []string{"b"}),
		patch.NewChunk(1, []string{"x"}),
	))

	got := p.Restore([]string{"a", "b", "c", "d"})
	assert.Equal(t, []string{"a", "x", "c", "d"}, got)
}

func TestRestoreEmptyPatch(t *testing.T) {
	p := patch.NewPatch[string]()
	got := p.Restore([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestChunkInvariants(t *testing.T) {
	c := patch.NewChunk(3, []string{"a", "b"})
	assert.Equal(t, 3, c.Position())
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, []string{"a", "b"}, c.Lines())
}
