package keyspace

import "errors"

// ErrDuplicateNode is returned by AddNode when a node with the same id is
// already present in the keyspace.
var ErrDuplicateNode = errors.New("keyspace: duplicate node")

// ErrUnknownNode is returned by RemoveNode when the given id is not a
// member of the keyspace.
var ErrUnknownNode = errors.New("keyspace: unknown node")

// ErrBelowReplicationFactor is returned by Build when fewer than
// ReplicationFactor nodes are supplied, and by RemoveNode when removal
// would leave the registry smaller than ReplicationFactor.
var ErrBelowReplicationFactor = errors.New("keyspace: node count below replication factor")

// ErrInsufficientEligibleReplicas is returned by ReplicasSlice when the
// selector walks every candidate without the strategy accepting R of them
// (Replicas reports no error; its sequence just ends early). This is a
// query-time failure, not a mutation-time one: a strategy
// may become unsatisfiable only for certain keys (e.g. ZoneDiverse with
// fewer zones than R).
var ErrInsufficientEligibleReplicas = errors.New("keyspace: insufficient eligible replicas")

// ErrInvalidShardCount is returned by Build when a positive
// Options.ShardCount is not a power of two. Zero or negative selects the
// default.
var ErrInvalidShardCount = errors.New("keyspace: shard count must be a positive power of two")

// ErrInvalidReplicationFactor is returned by Build when
// Options.ReplicationFactor is negative. Zero is treated as unset and
// defaults to DefaultReplicationFactor; only an explicit negative value is
// rejected.
var ErrInvalidReplicationFactor = errors.New("keyspace: replication factor must not be negative")
