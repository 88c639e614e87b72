package migration

import (
	"cmp"
	"sort"

	"github.com/distkit/keyspace/registry"
)

// Plan is a mapping from destination node id to an ordered list of
// Interval, sorted by range start.
type Plan[Id cmp.Ordered, N registry.Identifiable[Id]] struct {
	byDest map[Id][]Interval[Id, N]
}

// Destinations returns the ids that have at least one pull interval, in
// ascending order.
func (p *Plan[Id, N]) Destinations() []Id {
	out := make([]Id, 0, len(p.byDest))
	for id := range p.byDest {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PullIntervals returns destination's ordered interval list, or nil if it
// has none.
func (p *Plan[Id, N]) PullIntervals(destination Id) []Interval[Id, N] {
	return p.byDest[destination]
}

// IntervalCount returns the total number of intervals across all
// destinations, post-coalescing. Used for Metrics.MigrationPlanned.
func (p *Plan[Id, N]) IntervalCount() int {
	n := 0
	for _, ivs := range p.byDest {
		n += len(ivs)
	}
	return n
}

// Empty reports whether the plan has no pull intervals at all (e.g. a
// membership change that didn't move the top-R set for any shard).
func (p *Plan[Id, N]) Empty() bool { return len(p.byDest) == 0 }

// WithoutSource returns a new Plan with id removed from every interval's
// source set. This is the caller-opt-in alternative for node-removal source
// handling: a destination that no longer wants to pull from a node
// mid-decommission (e.g. the node being removed) can ask for it to be
// dropped from every source list, relying on replication redundancy among
// the remaining sources. The default Plan returned by Compute always keeps
// the removed node as a source.
func (p *Plan[Id, N]) WithoutSource(id Id) *Plan[Id, N] {
	out := &Plan[Id, N]{byDest: make(map[Id][]Interval[Id, N], len(p.byDest))}
	for dest, ivs := range p.byDest {
		filtered := make([]Interval[Id, N], len(ivs))
		for i, iv := range ivs {
			srcs := make(map[Id]N, len(iv.Sources))
			for sid, n := range iv.Sources {
				if sid == id {
					continue
				}
				srcs[sid] = n
			}
			filtered[i] = Interval[Id, N]{Range: iv.Range, Sources: srcs}
		}
		out.byDest[dest] = filtered
	}
	return out
}
