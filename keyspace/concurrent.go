package keyspace

import (
	"cmp"
	"iter"
	"sync"

	"github.com/distkit/keyspace/internal/util"
	"github.com/distkit/keyspace/migration"
)

// Guarded wraps a Keyspace with the reader-writer lock the core
// deliberately omits, so callers can choose their own synchronization
// strategy instead of paying for one they don't need. Reads take the read
// lock; AddNode/RemoveNode take the write lock. Call counters are padded to
// a cache line each (internal/util.PaddedAtomicInt64/Uint64) to avoid false
// sharing between goroutines hammering different counters under concurrent
// read load.
type Guarded[N Identifiable[Id], Id cmp.Ordered] struct {
	mu sync.RWMutex
	ks *Keyspace[N, Id]

	_       util.CacheLinePad
	reads   util.PaddedAtomicUint64
	writes  util.PaddedAtomicUint64
	mutated util.PaddedAtomicUint64
}

// NewGuarded wraps an already-built Keyspace.
func NewGuarded[N Identifiable[Id], Id cmp.Ordered](ks *Keyspace[N, Id]) *Guarded[N, Id] {
	return &Guarded[N, Id]{ks: ks}
}

// Reads returns the number of read-locked calls (Replicas/ReplicasSlice/
// Nodes) served so far.
func (g *Guarded[N, Id]) Reads() uint64 { return g.reads.Load() }

// Writes returns the number of write-locked calls (AddNode/RemoveNode)
// attempted so far, successful or not.
func (g *Guarded[N, Id]) Writes() uint64 { return g.writes.Load() }

// Mutations returns the number of write-locked calls that actually
// changed the registry.
func (g *Guarded[N, Id]) Mutations() uint64 { return g.mutated.Load() }

// Replicas takes the read lock for just long enough to snapshot the
// registry and build the lazy walk; the returned sequence itself iterates
// lock-free over the snapshot, so a slow consumer never holds the lock.
func (g *Guarded[N, Id]) Replicas(key []byte) iter.Seq[N] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.reads.Add(1)
	return g.ks.Replicas(key)
}

// ReplicasSlice takes the read lock for the full selection.
func (g *Guarded[N, Id]) ReplicasSlice(key []byte) ([]N, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.reads.Add(1)
	return g.ks.ReplicasSlice(key)
}

// Nodes takes the read lock and returns a snapshot of resident nodes.
func (g *Guarded[N, Id]) Nodes() []N {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.reads.Add(1)
	return g.ks.Nodes()
}

// AddNode takes the write lock for the whole insert-and-plan operation.
func (g *Guarded[N, Id]) AddNode(n N) (*migration.Plan[Id, N], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes.Add(1)
	plan, err := g.ks.AddNode(n)
	if err == nil {
		g.mutated.Add(1)
	}
	return plan, err
}

// RemoveNode takes the write lock for the whole remove-and-plan operation.
func (g *Guarded[N, Id]) RemoveNode(id Id) (*migration.Plan[Id, N], error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes.Add(1)
	plan, err := g.ks.RemoveNode(id)
	if err == nil {
		g.mutated.Add(1)
	}
	return plan, err
}
