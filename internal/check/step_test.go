package check

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys/fixtures"
)

func TestStepProvesInductiveCandidate(t *testing.T) {
	s := fixtures.Counter()
	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())

	res, err := Step(d, s, nil)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.IsOkay("nonneg") {
		t.Errorf("expected %q to be inductive", "nonneg")
	}
}

func TestStepFalsifiesNonInductiveCandidate(t *testing.T) {
	s := fixtures.CounterBoundedUnsound()
	script := "sat\n((cnt@0 10))\n((cnt@1 11))"
	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte(script)), solver.NewConfig())

	res, err := Step(d, s, nil)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.IsOkay("le10") {
		t.Errorf("expected %q to be non-inductive", "le10")
	}
	cex, ok := res.Cex("le10")
	if !ok {
		t.Fatalf("expected a recorded counterexample for %q", "le10")
	}
	if len(cex.Steps) != 2 {
		t.Fatalf("expected a 2-step step cex, got %d steps", len(cex.Steps))
	}
	if got := cex.Steps[0]["cnt"].String(); got != "10" {
		t.Errorf("cnt@0 = %q, want 10", got)
	}
	if got := cex.Steps[1]["cnt"].String(); got != "11" {
		t.Errorf("cnt@1 = %q, want 11", got)
	}
}

func TestStepAssertsConjunctiveAntecedentBeforeTrans(t *testing.T) {
	s := fixtures.Counter()
	var out bytes.Buffer
	d := solver.NewWithIO(&out, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())

	if _, err := Step(d, s, nil); err != nil {
		t.Fatalf("Step: %v", err)
	}
	log := out.String()
	antecedentIdx := strings.Index(log, "assert (>= cnt@0 0)")
	transIdx := strings.Index(log, "assert (= cnt@1")
	if antecedentIdx < 0 || transIdx < 0 || antecedentIdx > transIdx {
		t.Errorf("expected the candidate antecedent to be asserted before trans, got:\n%s", log)
	}
}
