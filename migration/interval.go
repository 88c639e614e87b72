// Package migration implements the differential algorithm that, by
// replaying replica selection on the before-set and after-set of nodes for
// each shard, emits a minimal per-destination list of (range, source nodes)
// pulls.
package migration

import (
	"cmp"
	"sort"

	"github.com/distkit/keyspace/registry"
	"github.com/distkit/keyspace/shard"
)

// Interval is a (KeyRange, source nodes) pair attached to a destination
// node: the destination must pull the key range from the union of the
// replicas the corresponding shards previously belonged to, excluding the
// destination itself.
type Interval[Id comparable, N registry.Identifiable[Id]] struct {
	Range   shard.KeyRange
	Sources map[Id]N
}

// sourceKeysEqual compares two source sets by id only, which is the
// equality the planner's coalescing step is defined over (spec's "equal
// source node sets", by id).
func sourceKeysEqual[Id comparable, N any](a, b map[Id]N) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

// coalesce merges consecutive intervals (already in ascending range-start
// order) whose ranges are adjacent and whose source sets are identical,
// keeping the plan compact when many consecutive shards share fate.
func coalesce[Id cmp.Ordered, N registry.Identifiable[Id]](ivs []Interval[Id, N]) []Interval[Id, N] {
	if len(ivs) == 0 {
		return ivs
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Range.Start < ivs[j].Range.Start })

	out := make([]Interval[Id, N], 0, len(ivs))
	cur := ivs[0]
	for _, next := range ivs[1:] {
		if cur.Range.Adjacent(next.Range) && sourceKeysEqual(cur.Sources, next.Sources) {
			cur.Range = shard.KeyRange{Start: cur.Range.Start, End: next.Range.End}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}
