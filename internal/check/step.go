package check

import (
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys"
)

// Step proves, for every candidate P, that P(v@0) ∧ trans(v@0,v@1) =>
// P(v@1), assuming every candidate (not just P) held at state 0. That
// conjunctive antecedent is what makes this a simultaneous 1-induction
// rather than a per-candidate induction: a set of candidates may only be
// jointly inductive even when none is inductive alone.
func Step(d *solver.Driver, s *sys.Sys, log hclog.Logger) (StepRes, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.Named("step")
	res := newCheckRes(s)

	if err := d.DeclareVars(s.Decls(), 0); err != nil {
		return StepRes{}, fmt.Errorf("check: step: declaring state 0: %w", err)
	}
	if err := d.DeclareVars(s.Decls(), 1); err != nil {
		return StepRes{}, fmt.Errorf("check: step: declaring state 1: %w", err)
	}
	for _, c := range s.Candidates() {
		if err := d.Assert(c.Pred, 0); err != nil {
			return StepRes{}, fmt.Errorf("check: step: asserting antecedent %q: %w", c.Name, err)
		}
	}
	if err := d.Assert(s.Trans(), 1); err != nil {
		return StepRes{}, fmt.Errorf("check: step: asserting trans: %w", err)
	}

	for _, c := range s.Candidates() {
		if err := checkOneAt(d, log, res, c, 1, 2); err != nil {
			return StepRes{}, fmt.Errorf("check: step: candidate %q: %w", c.Name, err)
		}
	}
	return StepRes{*res}, nil
}
