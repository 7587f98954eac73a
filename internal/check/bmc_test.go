package check

import (
	"bytes"
	"testing"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys/fixtures"
)

func TestBmcStopsAtMaxK(t *testing.T) {
	s := fixtures.Counter()
	seed := newCheckRes(s)
	seed.markOkay("nonneg")

	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())
	b := NewBmc(d, s, *seed, nil)

	res, err := b.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.IsOkay("nonneg") {
		t.Errorf("expected nonneg to remain okay, no falsification was scripted")
	}
	if b.Depth() != 1 {
		t.Errorf("expected Bmc to have checked depth 0 only, Depth() = %d", b.Depth())
	}
}

func TestBmcFindsFalsificationAtDepth(t *testing.T) {
	s := fixtures.CounterBoundedUnsound()
	seed := newCheckRes(s)
	seed.markOkay("le10")

	// Depth 0: le10 survives (cnt=0). Depth 1: le10's negation is
	// satisfiable at some depth once cnt exceeds 10 — scripted as the
	// second check-sat returning sat with a trace of length 2.
	script := "unsat\nsat\n((cnt@0 0))\n((cnt@1 11))"
	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte(script)), solver.NewConfig())
	b := NewBmc(d, s, *seed, nil)

	res, err := b.Run(NoMaxK)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.IsOkay("le10") {
		t.Errorf("expected le10 to be falsified")
	}
	cex, ok := res.Cex("le10")
	if !ok {
		t.Fatalf("expected a recorded counterexample")
	}
	if len(cex.Steps) != 2 {
		t.Fatalf("expected a 2-step cex (depth 1), got %d steps", len(cex.Steps))
	}
}

func TestBmcDoneWhenSeedEmpty(t *testing.T) {
	s := fixtures.Counter()
	seed := newCheckRes(s)
	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader(nil), solver.NewConfig())
	b := NewBmc(d, s, *seed, nil)
	if !b.Done() {
		t.Errorf("expected Bmc with an empty seed okay set to already be done")
	}
	res, err := b.Run(NoMaxK)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.OkayNames()) != 0 {
		t.Errorf("expected no okay candidates, got %v", res.OkayNames())
	}
}
