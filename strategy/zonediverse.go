package strategy

// Zoned is the constraint a node type must satisfy to use ZoneDiverse: it
// must expose the availability zone it lives in.
type Zoned interface {
	Zone() string
}

// ZoneDiverse is a Factory requiring every chosen replica to come from a
// zone not already represented among the replicas chosen earlier in the
// same walk. It cannot guarantee R distinct zones exist; if fewer than R
// zones are present among eligible nodes, the selector that drives this
// strategy will exhaust its candidates and report
// ErrInsufficientEligibleReplicas, per the strategy's greedy, no-lookahead
// contract (it never backtracks to swap an earlier pick for a better one).
type ZoneDiverse[N Zoned] struct{}

// New returns a fresh zone-tracking Strategy. A new "zones used" set is
// allocated per call so state never leaks between keys.
func (ZoneDiverse[N]) New() Strategy[N] {
	return &zoneDiverse[N]{used: make(map[string]struct{})}
}

type zoneDiverse[N Zoned] struct {
	used map[string]struct{}
}

// IsEligible accepts candidate only if its zone has not already been used
// by an earlier pick in this walk, and records the zone when it accepts.
func (s *zoneDiverse[N]) IsEligible(candidate N) bool {
	z := candidate.Zone()
	if _, seen := s.used[z]; seen {
		return false
	}
	s.used[z] = struct{}{}
	return true
}

var _ Factory[Zoned] = ZoneDiverse[Zoned]{}
