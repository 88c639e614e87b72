package keyspace

import (
	"bytes"
	"cmp"
	"container/heap"
	"fmt"
	"iter"

	"github.com/distkit/keyspace/hash"
	"github.com/distkit/keyspace/strategy"
)

// idBytes encodes an ordered, comparable id to bytes for hashing. Strings
// are used as-is; everything else falls back to its default formatting,
// which is stable for the ordered scalar kinds cmp.Ordered permits
// (integers, floats, ~string types).
func idBytes[Id cmp.Ordered](id Id) []byte {
	if s, ok := any(id).(string); ok {
		return []byte(s)
	}
	return []byte(fmt.Sprint(id))
}

// weightedCandidate pairs a node with its precomputed rendezvous weight and
// id bytes, so the heap comparator never re-hashes.
type weightedCandidate[N any] struct {
	node   N
	idByte []byte
	weight uint64
}

// candidateHeap is a max-heap by weight, ties broken by ascending id bytes,
// per spec's "sort descending, ties ascending by node_id" contract. Using
// container/heap over all n candidates (rather than a bounded top-R heap)
// is what gives Replicas its lazy top-1 fast path: heap.Init is O(n) once,
// and each subsequent Pop is O(log n) — the caller pays only for the
// replicas it actually consumes.
type candidateHeap[N any] []weightedCandidate[N]

func (h candidateHeap[N]) Len() int { return len(h) }

func (h candidateHeap[N]) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight > h[j].weight
	}
	return bytes.Compare(h[i].idByte, h[j].idByte) < 0
}

func (h candidateHeap[N]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap[N]) Push(x any) { *h = append(*h, x.(weightedCandidate[N])) }

func (h *candidateHeap[N]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// replicaWalk returns a lazy sequence of nodes in descending rendezvous
// weight for the given subject (a key hash or a shard lower bound),
// filtered through strat.IsEligible. subject is hashed against each node's
// id via hasher.HashPair; ties are broken by ascending node id.
func replicaWalk[N Identifiable[Id], Id cmp.Ordered](nodes []N, subject uint64, hasher hash.Hasher, strat strategy.Strategy[N]) iter.Seq[N] {
	return func(yield func(N) bool) {
		h := make(candidateHeap[N], 0, len(nodes))
		for _, n := range nodes {
			idb := idBytes(n.ID())
			h = append(h, weightedCandidate[N]{
				node:   n,
				idByte: idb,
				weight: hasher.HashPair(subject, idb),
			})
		}
		heap.Init(&h)
		for h.Len() > 0 {
			c := heap.Pop(&h).(weightedCandidate[N])
			if !strat.IsEligible(c.node) {
				continue
			}
			if !yield(c.node) {
				return
			}
		}
	}
}

// collectReplicas drains at most r nodes from seq, returning
// ErrInsufficientEligibleReplicas if fewer than r are produced.
func collectReplicas[N any](seq iter.Seq[N], r int) ([]N, error) {
	out := make([]N, 0, r)
	for n := range seq {
		out = append(out, n)
		if len(out) == r {
			return out, nil
		}
	}
	return nil, ErrInsufficientEligibleReplicas
}
