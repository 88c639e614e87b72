// Package prom adapts keyspace.Metrics to Prometheus counters and gauges.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/distkit/keyspace/keyspace"
)

// Adapter implements keyspace.Metrics and exports Prometheus counters and
// gauges. Safe for concurrent use; all Prometheus metric types are
// goroutine-safe.
type Adapter struct {
	queriesFound  prometheus.Counter
	queriesFailed prometheus.Counter
	plans         prometheus.Counter
	planIntervals prometheus.Histogram
	registrySize  prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		queriesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "replica_queries_satisfied_total",
			Help:        "ReplicasSlice calls that found R eligible replicas",
			ConstLabels: constLabels,
		}),
		queriesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "replica_queries_insufficient_total",
			Help:        "ReplicasSlice calls that could not find R eligible replicas",
			ConstLabels: constLabels,
		}),
		plans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "migration_plans_total",
			Help:        "Migration plans computed by AddNode/RemoveNode",
			ConstLabels: constLabels,
		}),
		planIntervals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "migration_plan_intervals",
			Help:        "Number of pull intervals per migration plan, after coalescing",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 16),
		}),
		registrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "registry_size",
			Help:        "Number of resident nodes",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.queriesFound, a.queriesFailed, a.plans, a.planIntervals, a.registrySize)
	return a
}

// ReplicaQuery increments the satisfied or insufficient counter.
func (a *Adapter) ReplicaQuery(found bool) {
	if found {
		a.queriesFound.Inc()
		return
	}
	a.queriesFailed.Inc()
}

// MigrationPlanned increments the plan counter and observes the interval
// count.
func (a *Adapter) MigrationPlanned(intervals int) {
	a.plans.Inc()
	a.planIntervals.Observe(float64(intervals))
}

// RegistrySize sets the registry size gauge.
func (a *Adapter) RegistrySize(n int) {
	a.registrySize.Set(float64(n))
}

// Compile-time check: ensure Adapter implements keyspace.Metrics.
var _ keyspace.Metrics = (*Adapter)(nil)
