// Package keyspace provides keyspace partitioning, replica selection, and
// migration-plan computation for a cluster of physical nodes in a
// distributed data store.
//
// Design
//
//   - Replica selection: a generalization of Highest-Random-Weight
//     (rendezvous) hashing. No virtual nodes are stored; per-key cost is
//     O(n) in the number of physical nodes, and the routing table is just
//     the node list itself. Selection is pluggable via the strategy
//     package (default: every node eligible; ZoneDiverse: one replica per
//     availability zone).
//
//   - Shard grid: the 64-bit hash space is divided into a fixed number of
//     equal-width shards (package shard). Shards are the unit of
//     migration; keys are never stored, only ever hashed in flight.
//
//   - Migration planning: package migration replays replica selection on
//     the registry's before-set and after-set of nodes for every shard and
//     emits a minimal per-destination list of (range, source nodes) pulls,
//     coalescing adjacent shards that share the same source set.
//
//   - Concurrency: Keyspace performs no internal locking. Reads (Replicas)
//     are safe to call concurrently with each other; AddNode/RemoveNode
//     require exclusive access, which Guarded provides as an optional
//     RWMutex wrapper for callers who want the library to own that
//     decision instead of rolling their own.
//
//   - Metrics: Options.Metrics receives ReplicaQuery/MigrationPlanned/
//     RegistrySize signals. By default NoopMetrics is used; plug a
//     Prometheus adapter (metrics/prom) to export them.
//
// Basic usage
//
//	ks, err := keyspace.Build(keyspace.Options[node, string]{
//	    Nodes:             []node{{id: "n0"}, {id: "n1"}, {id: "n2"}},
//	    ReplicationFactor: 3,
//	})
//	replicas, err := ks.ReplicasSlice([]byte("user:42"))
//
// Adding a node and acting on the migration plan
//
//	plan, err := ks.AddNode(node{id: "n3"})
//	for _, dest := range plan.Destinations() {
//	    for _, interval := range plan.PullIntervals(dest) {
//	        // pull interval.Range from the nodes in interval.Sources
//	    }
//	}
//
// Zone-diverse replication
//
//	ks, err := keyspace.Build(keyspace.Options[zonedNode, string]{
//	    Nodes:             nodes,
//	    ReplicationFactor: 3,
//	    Strategy:          strategy.ZoneDiverse[zonedNode]{},
//	})
package keyspace
