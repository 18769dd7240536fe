package patch

// Patch is an ordered sequence of deltas relating an original sequence to a
// revised one. Deltas are ordered by ascending Position of their original
// chunks and do not overlap: given an original chunk [p, p+len), the next
// delta's original position is >= p+len. Producers ([myers] and
// [unifieddiff]) are responsible for maintaining this invariant; Patch
// itself never re-sorts.
type Patch[T any] struct {
	deltas []Delta[T]
}

// NewPatch returns an empty patch ready to be built up with [Patch.AddDelta].
func NewPatch[T any]() *Patch[T] {
	return &Patch[T]{}
}

// AddDelta appends d to the patch, preserving caller-supplied order.
func (p *Patch[T]) AddDelta(d Delta[T]) {
	p.deltas = append(p.deltas, d)
}

// Deltas returns a defensive copy of the patch's deltas in order.
func (p *Patch[T]) Deltas() []Delta[T] {
	out := make([]Delta[T], len(p.deltas))
	copy(out, p.deltas)
	return out
}

// Restore replays the patch over original to produce the revised sequence it
// was built from. It is a convenience for tests, not used by [myers] or
// [unifieddiff] themselves: patch application is explicitly an external
// collaborator per the core's scope.
func (p *Patch[T]) Restore(original []T) []T {
	out := make([]T, 0, len(original))
	pos := 0
	for _, d := range p.deltas {
		oc := d.Original()
		out = append(out, original[pos:oc.Position()]...)
		out = append(out, d.Revised().Lines()...)
		pos = oc.Position() + oc.Size()
	}
	out = append(out, original[pos:]...)
	return out
}
