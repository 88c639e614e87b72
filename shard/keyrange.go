package shard

import "fmt"

// KeyRange is a half-open interval [Start, End) over the 64-bit hash space.
// End == nil means the range is unbounded above, i.e. it extends to 2^64.
type KeyRange struct {
	Start uint64
	End   *uint64
}

// RangeFor builds the KeyRange for the shard whose lower bound is lo,
// using grid g to resolve the (possibly open) upper bound.
func RangeFor(g *Grid, lo uint64) KeyRange {
	hi, open := g.UpperBound(lo)
	if open {
		return KeyRange{Start: lo}
	}
	h := hi
	return KeyRange{Start: lo, End: &h}
}

// Adjacent reports whether r's end equals other's start (r immediately
// precedes other), the coalescing condition the migration planner uses to
// merge consecutive intervals with identical source sets.
func (r KeyRange) Adjacent(other KeyRange) bool {
	if r.End == nil {
		return false
	}
	return *r.End == other.Start
}

// Unbounded reports whether the range extends to 2^64.
func (r KeyRange) Unbounded() bool { return r.End == nil }

// String renders the range as "[start, end)" or "[start, 2^64)".
func (r KeyRange) String() string {
	if r.End == nil {
		return fmt.Sprintf("[%d, 2^64)", r.Start)
	}
	return fmt.Sprintf("[%d, %d)", r.Start, *r.End)
}
