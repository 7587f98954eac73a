package fixtures

import "testing"

func TestCounterHasExpectedShape(t *testing.T) {
	s := Counter()
	if len(s.Decls()) != 1 {
		t.Errorf("expected 1 declared variable, got %d", len(s.Decls()))
	}
	if !s.HasCandidate("nonneg") {
		t.Errorf("expected candidate %q", "nonneg")
	}
}

func TestStopwatchHasExpectedCandidates(t *testing.T) {
	s := Stopwatch()
	want := []string{
		"count in range", "max in range", "count real range",
		"count positive", "reset semantics", "modes are exclusive", "one mode active",
	}
	for _, name := range want {
		if !s.HasCandidate(name) {
			t.Errorf("expected candidate %q", name)
		}
	}
	if len(s.Decls()) != 7 {
		t.Errorf("expected 7 declared variables, got %d", len(s.Decls()))
	}
}

func TestUnknownOpBuilds(t *testing.T) {
	s := UnknownOp()
	if len(s.CandidateNames()) != 5 {
		t.Errorf("expected 5 candidates, got %d", len(s.CandidateNames()))
	}
}

func TestFixturesDoNotPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("fixture construction panicked: %v", r)
		}
	}()
	Counter()
	CounterUnsafeInit()
	CounterBoundedUnsound()
	Stopwatch()
	UnknownOp()
}
