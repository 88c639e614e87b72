package strategy

// Default is a Factory producing a stateless strategy that accepts every
// candidate. It is the zero-cost baseline the Keyspace uses when no
// Options.Strategy is supplied.
type Default[N any] struct{}

// New returns a stateless always-eligible Strategy.
func (Default[N]) New() Strategy[N] { return allEligible[N]{} }

type allEligible[N any] struct{}

func (allEligible[N]) IsEligible(N) bool { return true }

var _ Factory[struct{}] = Default[struct{}]{}
