// Package check implements the base checker, step checker, and bounded
// model-checking engine: the three ways a Sys's candidates are proved or
// falsified against a running solver.Driver, plus the counterexample
// extraction protocol and a plain-text result summarizer.
package check

import (
	"fmt"

	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/term"
)

// Cex is a counterexample trace: an ordered sequence of per-step
// assignments, plus any solver symbol that could not be matched back to a
// declared variable.
type Cex struct {
	// Steps[i] holds the assignment of every declared variable at state
	// index i. Base cexs have len(Steps) == 1; step cexs have len == 2;
	// BMC cexs at depth k have len == k+1.
	Steps []map[string]*term.Const

	// Unexpected captures solver symbols or values the extractor could not
	// parse, keyed by the raw symbol name. A non-empty Unexpected does not
	// invalidate the rest of the trace.
	Unexpected map[string]string
}

// CheckRes is the result of one base, step, or BMC pass over a fixed
// candidate set: every candidate is either still okay or has a recorded
// falsification, and never both.
type CheckRes struct {
	sys  *sys.Sys
	okay map[string]struct{}
	cexs map[string]Cex
}

func newCheckRes(s *sys.Sys) *CheckRes {
	return &CheckRes{
		sys:  s,
		okay: make(map[string]struct{}, len(s.Candidates())),
		cexs: make(map[string]Cex),
	}
}

func (r *CheckRes) markOkay(name string) {
	r.okay[name] = struct{}{}
}

func (r *CheckRes) markFalsified(name string, cex Cex) {
	delete(r.okay, name)
	r.cexs[name] = cex
}

// Sys returns the system this result was computed against.
func (r CheckRes) Sys() *sys.Sys { return r.sys }

// IsOkay reports whether name is still considered safe by this result.
func (r CheckRes) IsOkay(name string) bool {
	_, ok := r.okay[name]
	return ok
}

// Cex looks up the falsification recorded for name, if any.
func (r CheckRes) Cex(name string) (Cex, bool) {
	c, ok := r.cexs[name]
	return c, ok
}

// OkayNames returns the names still okay, in the system's declared order.
func (r CheckRes) OkayNames() []string {
	var out []string
	for _, name := range r.sys.CandidateNames() {
		if _, ok := r.okay[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// FalsifiedNames returns the falsified names, in the system's declared order.
func (r CheckRes) FalsifiedNames() []string {
	var out []string
	for _, name := range r.sys.CandidateNames() {
		if _, ok := r.cexs[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// HasFalsifications reports whether any candidate was falsified.
func (r CheckRes) HasFalsifications() bool { return len(r.cexs) > 0 }

// AllFalsified reports whether every candidate has been falsified (and so
// nothing remains okay to search further).
func (r CheckRes) AllFalsified() bool { return len(r.okay) == 0 }

// BaseRes is the distinguished result of a base check. It wraps CheckRes
// rather than embedding its fields directly so a BaseRes can never be
// passed where a StepRes is expected, or vice versa.
type BaseRes struct{ CheckRes }

// StepRes is the distinguished result of a step check.
type StepRes struct{ CheckRes }

// MergeWithStep computes the BMC seed from a base result and the step
// result for the same system, per the merge rule: candidates proven safe
// by both base and step, and candidates falsified only at the step
// (non-inductive but not known unsafe), are both okay in the seed, so a
// Bmc built from it searches all of them; base falsifications are real
// and pass through untouched.
func (base BaseRes) MergeWithStep(step StepRes) (CheckRes, error) {
	if base.sys != step.sys {
		return CheckRes{}, fmt.Errorf("check: merge_base_with_step: base and step results reference different systems")
	}
	seed := newCheckRes(base.sys)
	for name := range base.okay {
		if _, stepOkay := step.okay[name]; stepOkay {
			seed.markOkay(name)
			continue
		}
		if _, stepFalsified := step.cexs[name]; stepFalsified {
			seed.markOkay(name)
		}
	}
	for name, cex := range base.cexs {
		seed.cexs[name] = cex
	}
	return *seed, nil
}
