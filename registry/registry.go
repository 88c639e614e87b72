// Package registry implements the ordered, de-duplicated collection of
// nodes that backs a Keyspace. It is the single point where node identity
// and the "no duplicates, never below R" invariants are enforced.
package registry

import (
	"errors"
	"sort"
)

// ErrDuplicateNode is returned by Insert when a node with the same id is
// already present.
var ErrDuplicateNode = errors.New("registry: duplicate node id")

// ErrUnknownNode is returned by Remove when the given id is not present.
var ErrUnknownNode = errors.New("registry: unknown node id")

// ErrBelowMinSize is returned by Remove when removing the node would leave
// the registry smaller than the caller-supplied minimum size.
var ErrBelowMinSize = errors.New("registry: removal would drop below minimum size")

// Identifiable is the minimal contract a caller-supplied node type must
// satisfy: a stable, comparable identifier.
type Identifiable[Id comparable] interface {
	ID() Id
}

// Registry is a set of nodes keyed by Id, with deterministic ascending-id
// iteration order so diagnostics and tests are reproducible. It performs no
// internal locking: per the core's single-threaded contract, callers owning
// a Keyspace are responsible for any cross-goroutine synchronization (see
// keyspace.Guarded for an optional RWMutex wrapper).
type Registry[N Identifiable[Id], Id comparable] struct {
	byID  map[Id]N
	order []Id
	less  func(a, b Id) bool
}

// New constructs an empty Registry. less must implement a strict total
// order over Id and is used only to keep Snapshot/iteration deterministic;
// it does not affect routing.
func New[N Identifiable[Id], Id comparable](less func(a, b Id) bool) *Registry[N, Id] {
	return &Registry[N, Id]{
		byID: make(map[Id]N),
		less: less,
	}
}

// Len returns the number of resident nodes.
func (r *Registry[N, Id]) Len() int { return len(r.order) }

// Contains reports whether id is present.
func (r *Registry[N, Id]) Contains(id Id) bool {
	_, ok := r.byID[id]
	return ok
}

// Get returns the node for id and whether it was found.
func (r *Registry[N, Id]) Get(id Id) (N, bool) {
	n, ok := r.byID[id]
	return n, ok
}

// Insert adds n, failing with ErrDuplicateNode if its id is already present.
func (r *Registry[N, Id]) Insert(n N) error {
	id := n.ID()
	if _, exists := r.byID[id]; exists {
		return ErrDuplicateNode
	}
	r.byID[id] = n
	idx := sort.Search(len(r.order), func(i int) bool { return !r.less(r.order[i], id) })
	r.order = append(r.order, id)
	copy(r.order[idx+1:], r.order[idx:])
	r.order[idx] = id
	return nil
}

// Remove deletes id, failing with ErrUnknownNode if absent or
// ErrBelowMinSize if the removal would leave fewer than minSize nodes.
func (r *Registry[N, Id]) Remove(id Id, minSize int) error {
	if _, exists := r.byID[id]; !exists {
		return ErrUnknownNode
	}
	if len(r.order)-1 < minSize {
		return ErrBelowMinSize
	}
	delete(r.byID, id)
	idx := sort.Search(len(r.order), func(i int) bool { return !r.less(r.order[i], id) })
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	return nil
}

// Snapshot returns a defensive copy of the resident nodes in ascending id
// order. Callers may retain the returned slice; mutating the registry
// afterward never affects a previously returned Snapshot.
func (r *Registry[N, Id]) Snapshot() []N {
	out := make([]N, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// Clone returns a deep-enough copy of the registry (new map and order
// slice, nodes themselves are not deep-copied) suitable for the
// copy-on-write mutation pattern Keyspace uses to keep Add/RemoveNode
// transactional.
func (r *Registry[N, Id]) Clone() *Registry[N, Id] {
	c := &Registry[N, Id]{
		byID:  make(map[Id]N, len(r.byID)),
		order: make([]Id, len(r.order)),
		less:  r.less,
	}
	for k, v := range r.byID {
		c.byID[k] = v
	}
	copy(c.order, r.order)
	return c
}
