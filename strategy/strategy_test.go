package strategy

import "testing"

func TestDefault_AlwaysEligible(t *testing.T) {
	t.Parallel()

	s := Default[string]{}.New()
	for _, candidate := range []string{"a", "b", "c"} {
		if !s.IsEligible(candidate) {
			t.Fatalf("Default strategy rejected %q", candidate)
		}
	}
}

func TestFactoryFunc_AdaptsPlainFunction(t *testing.T) {
	t.Parallel()

	var calls int
	f := FactoryFunc[string](func() Strategy[string] {
		calls++
		return Default[string]{}.New()
	})

	_ = f.New()
	_ = f.New()
	if calls != 2 {
		t.Fatalf("FactoryFunc.New() called underlying func %d times, want 2", calls)
	}
}

type zonedNode struct {
	id, zone string
}

func (n zonedNode) ID() string   { return n.id }
func (n zonedNode) Zone() string { return n.zone }

func TestZoneDiverse_RejectsRepeatZone(t *testing.T) {
	t.Parallel()

	s := ZoneDiverse[zonedNode]{}.New()

	a := zonedNode{id: "a", zone: "us-east"}
	b := zonedNode{id: "b", zone: "us-east"}
	c := zonedNode{id: "c", zone: "us-west"}

	if !s.IsEligible(a) {
		t.Fatal("first candidate in a fresh zone must be eligible")
	}
	if s.IsEligible(b) {
		t.Fatal("second candidate sharing a's zone must be rejected")
	}
	if !s.IsEligible(c) {
		t.Fatal("candidate in a new zone must be eligible")
	}
}

func TestZoneDiverse_FreshStatePerNewCall(t *testing.T) {
	t.Parallel()

	factory := ZoneDiverse[zonedNode]{}
	n := zonedNode{id: "a", zone: "us-east"}

	s1 := factory.New()
	if !s1.IsEligible(n) {
		t.Fatal("first use of a fresh strategy must accept the first candidate")
	}

	s2 := factory.New()
	if !s2.IsEligible(n) {
		t.Fatal("a newly-created strategy must not carry state from a previous one")
	}
}
