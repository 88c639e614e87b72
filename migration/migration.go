package migration

import (
	"cmp"

	"github.com/distkit/keyspace/registry"
	"github.com/distkit/keyspace/shard"
)

// Selector is the minimal interface the planner needs from a keyspace's
// replica selector, kept narrow so this package never imports keyspace
// (the dependency runs the other way: keyspace imports migration).
type Selector[N registry.Identifiable[Id], Id comparable] interface {
	// ReplicasForHash returns the replicas (at most R) nodes would select
	// for the given key-or-shard hash, using a fresh strategy instance.
	ReplicasForHash(h uint64, nodes []N) ([]N, error)
}

// Compute diffs the per-shard replica set before and after a node
// membership change and builds the per-destination pull plan.
//
// Selection uses each shard's lower bound as if it were a key hash: the
// shard has a canonical assignment, and individual keys within it inherit
// that assignment because shard width is vastly larger than a single key's
// weight variance. When a key's own hash disagrees with its shard's
// canonical assignment, this plan is an over-approximation — it may pull
// data a destination turns out not to need, but it never under-pulls.
func Compute[N registry.Identifiable[Id], Id cmp.Ordered](before, after []N, grid *shard.Grid, sel Selector[N, Id], r int) (*Plan[Id, N], error) {
	tentative := make(map[Id][]Interval[Id, N])

	for lo := range grid.Lowers() {
		beforeReplicas, err := sel.ReplicasForHash(lo, before)
		if err != nil {
			return nil, err
		}
		afterReplicas, err := sel.ReplicasForHash(lo, after)
		if err != nil {
			return nil, err
		}

		beforeSet := make(map[Id]struct{}, len(beforeReplicas))
		for _, n := range beforeReplicas {
			beforeSet[n.ID()] = struct{}{}
		}

		rng := shard.RangeFor(grid, lo)
		for _, dst := range afterReplicas {
			did := dst.ID()
			if _, present := beforeSet[did]; present {
				continue
			}
			sources := make(map[Id]N, len(beforeReplicas))
			for _, src := range beforeReplicas {
				if src.ID() == did {
					continue
				}
				sources[src.ID()] = src
			}
			tentative[did] = append(tentative[did], Interval[Id, N]{Range: rng, Sources: sources})
		}
	}

	for id, ivs := range tentative {
		tentative[id] = coalesce(ivs)
	}

	return &Plan[Id, N]{byDest: tentative}, nil
}
