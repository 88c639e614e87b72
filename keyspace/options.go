package keyspace

import (
	"cmp"

	"go.uber.org/zap"

	"github.com/distkit/keyspace/hash"
	"github.com/distkit/keyspace/internal/logging"
	"github.com/distkit/keyspace/registry"
	"github.com/distkit/keyspace/shard"
	"github.com/distkit/keyspace/strategy"
)

// DefaultReplicationFactor is used when Options.ReplicationFactor is zero.
const DefaultReplicationFactor = 3

// DefaultShardCount is a recommended shard count for the default
// replication factor, well above the library's S >= R*64 recommendation.
// Build does not apply it: a zero ShardCount defaults to
// shard.DefaultCount(ReplicationFactor), which is 1024 for R = 3.
const DefaultShardCount = 8192

// Identifiable is the contract a caller-supplied node type must satisfy:
// a stable, comparable, orderable identifier. Id's ordering is used only to
// make iteration and diagnostics deterministic; it has no effect on which
// nodes are selected as replicas.
type Identifiable[Id cmp.Ordered] = registry.Identifiable[Id]

// Options configures a Keyspace. Zero values are mostly safe; Build applies
// the following defaults. Configuration is a plain struct-of-knobs rather
// than a functional-options builder, since it composes more simply with the
// generic type parameters already in play:
//   - ReplicationFactor == 0 => DefaultReplicationFactor (3); a negative
//     value makes Build fail with ErrInvalidReplicationFactor
//   - ShardCount        <= 0 => shard.DefaultCount(ReplicationFactor)
//     (nextPow2(64*R), clamped to [1024, 65536])
//   - nil Hasher             => hash.NewXXHash()
//   - nil Strategy           => strategy.Default[N]{}
//   - nil Metrics            => NoopMetrics{}
type Options[N Identifiable[Id], Id cmp.Ordered] struct {
	// Nodes is the initial node set. Must contain at least
	// ReplicationFactor distinct ids.
	Nodes []N

	// ReplicationFactor is R, the number of replicas Replicas returns.
	ReplicationFactor int

	// ShardCount is S, the number of fixed-width shards the migration
	// planner diffs over. Must be a power of two.
	ShardCount int

	// Hasher computes key and rendezvous-weight hashes.
	Hasher hash.Hasher

	// Strategy is the replication eligibility policy factory.
	Strategy strategy.Factory[N]

	// Metrics receives ReplicaQuery/MigrationPlanned/RegistrySize signals.
	Metrics Metrics

	// Logger, if set, receives a Debug entry every time AddNode/RemoveNode
	// emits a migration plan (interval count, destination count). It is
	// never consulted on the Replicas hot path. nil disables logging.
	Logger *zap.Logger
}

func (o *Options[N, Id]) setDefaults() {
	if o.ReplicationFactor <= 0 {
		o.ReplicationFactor = DefaultReplicationFactor
	}
	if o.ShardCount <= 0 {
		o.ShardCount = shard.DefaultCount(o.ReplicationFactor)
	}
	if o.Hasher == nil {
		o.Hasher = hash.NewXXHash()
	}
	if o.Strategy == nil {
		o.Strategy = strategy.Default[N]{}
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
}
