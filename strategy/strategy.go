// Package strategy implements the pluggable eligibility policies the
// replica selector consults while walking candidates in descending
// rendezvous-weight order. The shapes here follow a factory-produces-a-
// stateful-per-use-instance pattern: a cheap, stateless Factory is stored
// once on the Keyspace, and a fresh per-call Strategy instance carries
// whatever private state a policy needs (e.g. "zones used so far").
package strategy

// Strategy decides, purely locally, whether a candidate is eligible as the
// next replica. It sees candidates in descending rendezvous-weight order and
// cannot re-order or peek ahead; it may mutate its own state between calls
// (e.g. record the candidate's zone) but must never block or fail silently.
type Strategy[N any] interface {
	IsEligible(candidate N) bool
}

// Factory produces a fresh Strategy instance for every Replicas call. The
// core never reuses a Strategy across keys: reusing one would leak state
// (e.g. "zones used") from one key's selection into the next.
type Factory[N any] interface {
	New() Strategy[N]
}

// FactoryFunc adapts a plain function to Factory, an ergonomic escape hatch
// for a one-off strategy that doesn't need its own named type.
type FactoryFunc[N any] func() Strategy[N]

// New calls f.
func (f FactoryFunc[N]) New() Strategy[N] { return f() }
