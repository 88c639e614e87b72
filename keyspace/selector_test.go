package keyspace

import (
	"errors"
	"iter"
	"testing"

	"github.com/distkit/keyspace/strategy"
)

type selNode string

func (n selNode) ID() string { return string(n) }

// fixedHasher returns weights from a fixed table keyed by node id, ignoring
// subject, so tests can assert an exact descending order.
type fixedHasher struct {
	weights map[string]uint64
}

func (h fixedHasher) HashKey(key []byte) uint64 { return 0 }

func (h fixedHasher) HashPair(_ uint64, nodeID []byte) uint64 {
	return h.weights[string(nodeID)]
}

func TestReplicaWalk_DescendingWeightOrder(t *testing.T) {
	t.Parallel()

	nodes := []selNode{"a", "b", "c"}
	h := fixedHasher{weights: map[string]uint64{"a": 10, "b": 30, "c": 20}}
	strat := strategy.Default[selNode]{}.New()

	var order []selNode
	for n := range replicaWalk[selNode, string](nodes, 0, h, strat) {
		order = append(order, n)
	}

	want := []selNode{"b", "c", "a"}
	if len(order) != len(want) {
		t.Fatalf("order length = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestReplicaWalk_TiesBrokenByAscendingID(t *testing.T) {
	t.Parallel()

	nodes := []selNode{"z", "a", "m"}
	h := fixedHasher{weights: map[string]uint64{"z": 5, "a": 5, "m": 5}}
	strat := strategy.Default[selNode]{}.New()

	var order []selNode
	for n := range replicaWalk[selNode, string](nodes, 0, h, strat) {
		order = append(order, n)
	}

	want := []selNode{"a", "m", "z"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestReplicaWalk_LazyStopsAfterFirstYield(t *testing.T) {
	t.Parallel()

	nodes := []selNode{"a", "b", "c", "d"}
	h := fixedHasher{weights: map[string]uint64{"a": 1, "b": 2, "c": 3, "d": 4}}
	strat := strategy.Default[selNode]{}.New()

	var seen int
	walk := replicaWalk[selNode, string](nodes, 0, h, strat)
	walk(func(n selNode) bool {
		seen++
		return false // stop after the first value
	})
	if seen != 1 {
		t.Fatalf("walk yielded %d times before stopping, want 1", seen)
	}
}

func TestReplicaWalk_StrategyFiltersCandidates(t *testing.T) {
	t.Parallel()

	nodes := []selNode{"a", "b", "c"}
	h := fixedHasher{weights: map[string]uint64{"a": 10, "b": 30, "c": 20}}
	strat := rejectFunc[selNode](func(n selNode) bool { return n != "b" })

	var order []selNode
	for n := range replicaWalk[selNode, string](nodes, 0, h, strat) {
		order = append(order, n)
	}
	if len(order) != 2 || order[0] != "c" || order[1] != "a" {
		t.Fatalf("order = %v, want [c a] (b filtered out)", order)
	}
}

type rejectFunc[N any] func(N) bool

func (f rejectFunc[N]) IsEligible(n N) bool { return f(n) }

func TestCollectReplicas_ErrorOnShortfall(t *testing.T) {
	t.Parallel()

	seq := iter.Seq[selNode](func(yield func(selNode) bool) {
		yield(selNode("a"))
	})
	if _, err := collectReplicas(seq, 3); !errors.Is(err, ErrInsufficientEligibleReplicas) {
		t.Fatalf("collectReplicas shortfall = %v, want ErrInsufficientEligibleReplicas", err)
	}
}

func TestCollectReplicas_ExactCount(t *testing.T) {
	t.Parallel()

	seq := iter.Seq[selNode](func(yield func(selNode) bool) {
		for _, n := range []selNode{"a", "b", "c", "d"} {
			if !yield(n) {
				return
			}
		}
	})
	out, err := collectReplicas(seq, 2)
	if err != nil {
		t.Fatalf("collectReplicas: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}
