package keyspace

// Metrics exposes keyspace-level observability hooks: a small interface of
// per-operation counters and gauges an instrumentation backend can
// implement. A NoopMetrics implementation is used by default.
type Metrics interface {
	// ReplicaQuery is called once per ReplicasSlice call with whether the
	// selector found R eligible replicas. The lazy Replicas does not report.
	ReplicaQuery(found bool)
	// MigrationPlanned is called once per successful AddNode/RemoveNode
	// with the total number of intervals in the emitted plan, after
	// coalescing.
	MigrationPlanned(intervals int)
	// RegistrySize reports the resident node count after every successful
	// mutation.
	RegistrySize(n int)
}

// NoopMetrics is a Metrics implementation that does nothing. It is the
// default when Options.Metrics is nil.
type NoopMetrics struct{}

// ReplicaQuery ignores the call.
func (NoopMetrics) ReplicaQuery(bool) {}

// MigrationPlanned ignores the call.
func (NoopMetrics) MigrationPlanned(int) {}

// RegistrySize ignores the call.
func (NoopMetrics) RegistrySize(int) {}

var _ Metrics = NoopMetrics{}
