package keyspace

import (
	"cmp"
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/distkit/keyspace/hash"
	"github.com/distkit/keyspace/migration"
	"github.com/distkit/keyspace/registry"
	"github.com/distkit/keyspace/shard"
	"github.com/distkit/keyspace/strategy"
)

// Keyspace wires the node registry, shard grid, replica selector, and
// migration planner into the library's public surface: Replicas,
// AddNode, RemoveNode, Nodes.
//
// A Keyspace is single-threaded and synchronous: it owns no threads, does
// no I/O, and performs no internal locking. It is safe to call Replicas
// concurrently with other Replicas calls (it only reads an immutable
// registry snapshot), but AddNode/RemoveNode must not race with any other
// call on the same Keyspace. See Guarded for an optional RWMutex wrapper
// when that guarantee is needed.
type Keyspace[N Identifiable[Id], Id cmp.Ordered] struct {
	reg    *registry.Registry[N, Id]
	grid   *shard.Grid
	hasher hash.Hasher
	strat  strategy.Factory[N]
	sel    selectorAdapter[N, Id]
	r      int
	m      Metrics
	log    *zap.Logger
}

// Build constructs a Keyspace from Options. It fails with
// ErrInvalidReplicationFactor if ReplicationFactor is negative,
// ErrBelowReplicationFactor if fewer than ReplicationFactor nodes are
// supplied, ErrDuplicateNode on a duplicate id, or ErrInvalidShardCount if
// a positive ShardCount is not a power of two.
func Build[N Identifiable[Id], Id cmp.Ordered](opt Options[N, Id]) (*Keyspace[N, Id], error) {
	if opt.ReplicationFactor < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidReplicationFactor, opt.ReplicationFactor)
	}
	opt.setDefaults()

	reg := registry.New[N, Id](func(a, b Id) bool { return a < b })
	for _, n := range opt.Nodes {
		if err := reg.Insert(n); err != nil {
			if errors.Is(err, registry.ErrDuplicateNode) {
				return nil, fmt.Errorf("%w: %v", ErrDuplicateNode, n.ID())
			}
			return nil, err
		}
	}
	if reg.Len() < opt.ReplicationFactor {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrBelowReplicationFactor, reg.Len(), opt.ReplicationFactor)
	}

	grid, err := shard.NewGrid(opt.ShardCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShardCount, err)
	}

	ks := &Keyspace[N, Id]{
		reg:    reg,
		grid:   grid,
		hasher: opt.Hasher,
		strat:  opt.Strategy,
		sel:    selectorAdapter[N, Id]{hasher: opt.Hasher, strat: opt.Strategy, r: opt.ReplicationFactor},
		r:      opt.ReplicationFactor,
		m:      opt.Metrics,
		log:    opt.Logger,
	}
	ks.m.RegistrySize(ks.reg.Len())
	return ks, nil
}

// ReplicationFactor returns R, the number of replicas Replicas returns.
func (k *Keyspace[N, Id]) ReplicationFactor() int { return k.r }

// ShardGrid returns the keyspace's immutable shard grid.
func (k *Keyspace[N, Id]) ShardGrid() *shard.Grid { return k.grid }

// Nodes returns a defensive copy of the resident nodes in ascending id
// order.
func (k *Keyspace[N, Id]) Nodes() []N { return k.reg.Snapshot() }

// Replicas returns a lazy sequence of up to ReplicationFactor nodes for
// key, in descending rendezvous weight and filtered by the configured
// strategy. Pulling only the first value does not compute the rest: the
// underlying walk is a heap, not an eagerly built slice. If fewer than
// ReplicationFactor eligible nodes exist, the sequence simply yields fewer
// than R nodes and then ends — use ReplicasSlice if
// ErrInsufficientEligibleReplicas must be observed.
func (k *Keyspace[N, Id]) Replicas(key []byte) iter.Seq[N] {
	subject := k.hasher.HashKey(key)
	nodes := k.reg.Snapshot()
	walk := replicaWalk[N, Id](nodes, subject, k.hasher, k.strat.New())
	r := k.r
	return func(yield func(N) bool) {
		i := 0
		for n := range walk {
			if i == r {
				return
			}
			i++
			if !yield(n) {
				return
			}
		}
	}
}

// ReplicasSlice returns exactly ReplicationFactor replicas for key, or
// ErrInsufficientEligibleReplicas if the strategy couldn't find that many
// among the registry's nodes.
func (k *Keyspace[N, Id]) ReplicasSlice(key []byte) ([]N, error) {
	out, err := collectReplicas(k.Replicas(key), k.r)
	k.m.ReplicaQuery(err == nil)
	return out, err
}

// AddNode inserts n and returns the migration plan it triggers. The
// mutation is atomic: on any error the registry is left unchanged.
func (k *Keyspace[N, Id]) AddNode(n N) (*migration.Plan[Id, N], error) {
	before := k.reg.Snapshot()
	next := k.reg.Clone()
	if err := next.Insert(n); err != nil {
		if errors.Is(err, registry.ErrDuplicateNode) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateNode, n.ID())
		}
		return nil, err
	}
	return k.commit(before, next)
}

// RemoveNode deletes id and returns the migration plan it triggers. The
// mutation is atomic: on any error the registry is left unchanged. The
// returned plan keeps id in every interval's source set by default; call
// Plan.WithoutSource(id) if the caller detaches the node immediately and
// wants to rely on the remaining replicas instead.
func (k *Keyspace[N, Id]) RemoveNode(id Id) (*migration.Plan[Id, N], error) {
	before := k.reg.Snapshot()
	next := k.reg.Clone()
	if err := next.Remove(id, k.r); err != nil {
		switch {
		case errors.Is(err, registry.ErrUnknownNode):
			return nil, fmt.Errorf("%w: %v", ErrUnknownNode, id)
		case errors.Is(err, registry.ErrBelowMinSize):
			return nil, fmt.Errorf("%w: removing %v would leave fewer than %d nodes", ErrBelowReplicationFactor, id, k.r)
		default:
			return nil, err
		}
	}
	return k.commit(before, next)
}

func (k *Keyspace[N, Id]) commit(before []N, next *registry.Registry[N, Id]) (*migration.Plan[Id, N], error) {
	after := next.Snapshot()
	plan, err := migration.Compute[N, Id](before, after, k.grid, k.sel, k.r)
	if err != nil {
		return nil, err
	}
	k.reg = next
	k.m.RegistrySize(k.reg.Len())
	k.m.MigrationPlanned(plan.IntervalCount())
	if ce := k.log.Check(zap.DebugLevel, "migration plan computed"); ce != nil {
		ce.Write(
			zap.Int("intervals", plan.IntervalCount()),
			zap.Int("destinations", len(plan.Destinations())),
			zap.Int("registry_size", k.reg.Len()),
		)
	}
	return plan, nil
}

// selectorAdapter implements migration.Selector by reusing the same
// hasher and strategy factory the Keyspace uses for live queries, so the
// planner's before/after replica sets are computed identically to what
// Replicas would return for the same hash. A shard for which the strategy
// accepts fewer than R nodes is planned with the replicas it does accept,
// so ErrInsufficientEligibleReplicas never fails AddNode/RemoveNode.
type selectorAdapter[N Identifiable[Id], Id cmp.Ordered] struct {
	hasher hash.Hasher
	strat  strategy.Factory[N]
	r      int
}

func (s selectorAdapter[N, Id]) ReplicasForHash(h uint64, nodes []N) ([]N, error) {
	out := make([]N, 0, s.r)
	for n := range replicaWalk[N, Id](nodes, h, s.hasher, s.strat.New()) {
		out = append(out, n)
		if len(out) == s.r {
			break
		}
	}
	return out, nil
}
