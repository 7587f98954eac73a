package check

import (
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/term"
)

// Base proves, for every candidate P, that init(v@0) => P(v@0); candidates
// that don't hold are falsified with a one-step counterexample. Each
// candidate is checked in its own push/pop scope so one falsification
// cannot poison the others.
func Base(d *solver.Driver, s *sys.Sys, log hclog.Logger) (BaseRes, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log = log.Named("base")
	res := newCheckRes(s)

	if err := d.DeclareVars(s.Decls(), 0); err != nil {
		return BaseRes{}, fmt.Errorf("check: base: declaring state 0: %w", err)
	}
	if err := d.Assert(s.Init(), 0); err != nil {
		return BaseRes{}, fmt.Errorf("check: base: asserting init: %w", err)
	}

	for _, c := range s.Candidates() {
		if err := checkOneAt(d, log, res, c, 0, 1); err != nil {
			return BaseRes{}, fmt.Errorf("check: base: candidate %q: %w", c.Name, err)
		}
	}
	return BaseRes{*res}, nil
}

// checkOneAt pushes a frame, asserts the negated candidate at state s,
// classifies the reply, extracts a trace of the given length on Sat, and
// pops. Shared between the base and step checkers, which differ only in
// which state they negate the candidate at and how long the resulting
// trace is.
func checkOneAt(d *solver.Driver, log hclog.Logger, res *CheckRes, c sys.Candidate, s, traceLen int) error {
	if err := d.Push(); err != nil {
		return err
	}

	neg, err := term.NewApp(term.Not, c.Pred)
	if err != nil {
		_ = d.Pop()
		return fmt.Errorf("negating candidate: %w", err)
	}
	if err := d.Assert(neg, s); err != nil {
		_ = d.Pop()
		return err
	}
	status, err := d.CheckSat()
	if err != nil {
		_ = d.Pop()
		return err
	}
	switch status {
	case solver.Unsat:
		res.markOkay(c.Name)
		log.Debug("candidate holds", "candidate", c.Name)
	case solver.Sat:
		cex, err := extractTrace(d, res.sys, traceLen)
		if err != nil {
			cex = Cex{Unexpected: map[string]string{"extraction": err.Error()}}
		}
		res.markFalsified(c.Name, cex)
		log.Debug("candidate falsified", "candidate", c.Name)
	case solver.Unknown:
		res.markFalsified(c.Name, Cex{Unexpected: map[string]string{"solver": "unknown"}})
		log.Warn("solver returned unknown", "candidate", c.Name)
	}
	return d.Pop()
}
