package check

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys/fixtures"
)

func TestBaseAllCandidatesHold(t *testing.T) {
	s := fixtures.Counter()
	// One candidate ("nonneg"), so Base issues exactly one check-sat.
	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())

	res, err := Base(d, s, nil)
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if !res.IsOkay("nonneg") {
		t.Errorf("expected %q to be okay after base", "nonneg")
	}
	if res.HasFalsifications() {
		t.Errorf("expected no falsifications, got %v", res.FalsifiedNames())
	}
}

func TestBaseFalsifiesAndExtractsCex(t *testing.T) {
	s := fixtures.CounterUnsafeInit()
	script := "sat\n((cnt@0 (- 1)))"
	d := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte(script)), solver.NewConfig())

	res, err := Base(d, s, nil)
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if res.IsOkay("nonneg") {
		t.Errorf("expected %q to be falsified, init sets cnt=-1", "nonneg")
	}
	cex, ok := res.Cex("nonneg")
	if !ok {
		t.Fatalf("expected a recorded counterexample for %q", "nonneg")
	}
	if len(cex.Steps) != 1 {
		t.Fatalf("expected a 1-step base cex, got %d steps", len(cex.Steps))
	}
	got := cex.Steps[0]["cnt"]
	if got == nil || got.String() != "(- 1)" {
		t.Errorf("cnt@0 = %v, want (- 1)", got)
	}
}

func TestBaseEmitsDeclareThenInitThenPerCandidateScope(t *testing.T) {
	s := fixtures.Counter()
	var out bytes.Buffer
	d := solver.NewWithIO(&out, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())

	if _, err := Base(d, s, nil); err != nil {
		t.Fatalf("Base: %v", err)
	}
	log := out.String()
	wantOrder := []string{"declare-const cnt@0", "assert (= cnt@0 0)", "push 1", "check-sat", "pop 1"}
	pos := 0
	for _, want := range wantOrder {
		idx := strings.Index(log[pos:], want)
		if idx < 0 {
			t.Fatalf("expected %q to appear after position %d in:\n%s", want, pos, log)
		}
		pos += idx + len(want)
	}
}
