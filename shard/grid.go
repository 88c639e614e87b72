// Package shard implements the fixed division of the 64-bit hash space into
// equal-width shards used as the migration unit by the planner.
package shard

import (
	"errors"
	"fmt"
	"math"

	"github.com/distkit/keyspace/internal/util"
)

// ErrInvalidShardCount is returned by NewGrid when count is not a positive
// power of two.
var ErrInvalidShardCount = errors.New("shard: count must be a positive power of two")

// Grid is an immutable division of [0, 2^64) into Count() equal-width
// shards, each identified by its lower bound. The last shard absorbs the
// remainder of 2^64 / count so the shards tile the space exactly.
//
// A Grid's parameters are fixed at construction and never mutate, so
// multiple Grids (and the Keyspaces that own them) can coexist with
// different shard counts without shared global state.
type Grid struct {
	count int
	width uint64
}

// NewGrid constructs a Grid with the given shard count. count must be a
// power of two; ShardOf resolves a hash by integer division by Width().
// DefaultCount below picks one for a given replication factor.
func NewGrid(count int) (*Grid, error) {
	if count < 1 || !util.IsPowerOfTwo(uint64(count)) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, count)
	}
	return &Grid{
		count: count,
		width: width(count),
	}, nil
}

// DefaultCount returns a reasonable shard count for a replication factor r,
// per the library's recommendation that S >= R*64.
func DefaultCount(r int) int { return util.DefaultShardCount(r) }

func width(count int) uint64 {
	// floor(2^64 / count). math.MaxUint64 stands in for 2^64 since uint64
	// cannot represent 2^64 itself; the off-by-one is absorbed by the last
	// shard via UpperBound's "open" return.
	return (math.MaxUint64 / uint64(count)) + 1
}

// Count returns the number of shards in the grid.
func (g *Grid) Count() int { return g.count }

// Width returns the width of all shards except the last, which absorbs
// whatever 2^64 - (count-1)*Width leaves over.
func (g *Grid) Width() uint64 { return g.width }

// ShardOf returns the lower bound of the shard containing hash.
func (g *Grid) ShardOf(hash uint64) uint64 {
	idx := hash / g.width
	if idx >= uint64(g.count) {
		idx = uint64(g.count - 1)
	}
	return idx * g.width
}

// Lowers iterates the grid's shard lower bounds in ascending order. It is a
// range-over-func iterator so callers that only need the first few shards
// (diagnostics, tests) never materialize the full S-element sequence.
func (g *Grid) Lowers() func(yield func(uint64) bool) {
	return func(yield func(uint64) bool) {
		for i := 0; i < g.count; i++ {
			if !yield(uint64(i) * g.width) {
				return
			}
		}
	}
}

// UpperBound returns the exclusive upper bound of the shard starting at lo.
// open is true when the upper bound is 2^64 (the last shard), in which case
// hi is meaningless and callers should treat the range as unbounded above.
func (g *Grid) UpperBound(lo uint64) (hi uint64, open bool) {
	idx := lo / g.width
	if idx >= uint64(g.count-1) {
		return 0, true
	}
	return lo + g.width, false
}
