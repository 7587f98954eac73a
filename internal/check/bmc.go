package check

import (
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/term"
)

// NoMaxK disables the inclusive upper bound on Bmc.Run, so BMC searches
// until every candidate is falsified (which may never happen).
const NoMaxK = -1

// Bmc unrolls the transition relation one step at a time, looking for the
// smallest depth at which any still-unresolved candidate fails. It owns a
// single solver session and a CheckRes whose okay set shrinks monotonically
// as depth grows; a candidate once falsified never returns to okay.
type Bmc struct {
	sys *sys.Sys
	d   *solver.Driver
	log hclog.Logger
	res *CheckRes
	k   int
}

// NewBmc seeds a Bmc from the merged base/step result (see
// BaseRes.MergeWithStep). Passing an unmerged result is legal too — a
// caller running BMC alone, with no induction attempted, passes a CheckRes
// whose okay set is simply every candidate name.
func NewBmc(d *solver.Driver, s *sys.Sys, seed CheckRes, log hclog.Logger) *Bmc {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	res := newCheckRes(s)
	for name := range seed.okay {
		res.markOkay(name)
	}
	for name, cex := range seed.cexs {
		res.cexs[name] = cex
	}
	return &Bmc{sys: s, d: d, log: log.Named("bmc"), res: res}
}

// Depth returns the next depth Run will check.
func (b *Bmc) Depth() int { return b.k }

// Done reports whether every candidate has already been falsified, so
// further depths cannot teach BMC anything new.
func (b *Bmc) Done() bool { return b.res.AllFalsified() }

// Run iterates depths 0, 1, 2, ... until every candidate is falsified or
// maxK (inclusive) has been checked, whichever comes first. Pass NoMaxK for
// an unbounded search.
func (b *Bmc) Run(maxK int) (CheckRes, error) {
	for !b.Done() {
		if maxK != NoMaxK && b.k > maxK {
			break
		}
		if err := b.iterate(); err != nil {
			return CheckRes{}, fmt.Errorf("check: bmc: depth %d: %w", b.k, err)
		}
	}
	return *b.res, nil
}

// iterate checks every still-okay candidate at the current depth, then
// advances to the next.
func (b *Bmc) iterate() error {
	if err := b.d.DeclareVars(b.sys.Decls(), b.k); err != nil {
		return err
	}
	if b.k == 0 {
		if err := b.d.Assert(b.sys.Init(), 0); err != nil {
			return err
		}
	} else {
		if err := b.d.Assert(b.sys.Trans(), b.k); err != nil {
			return err
		}
	}

	for _, c := range b.sys.Candidates() {
		if !b.res.IsOkay(c.Name) {
			continue
		}
		if err := b.checkCandidateAtDepth(c); err != nil {
			return fmt.Errorf("candidate %q: %w", c.Name, err)
		}
	}

	b.k++
	return nil
}

func (b *Bmc) checkCandidateAtDepth(c sys.Candidate) error {
	if err := b.d.Push(); err != nil {
		return err
	}

	neg, err := term.NewApp(term.Not, c.Pred)
	if err != nil {
		_ = b.d.Pop()
		return err
	}
	if err := b.d.Assert(neg, b.k); err != nil {
		_ = b.d.Pop()
		return err
	}
	status, err := b.d.CheckSat()
	if err != nil {
		_ = b.d.Pop()
		return err
	}

	switch status {
	case solver.Sat:
		cex, err := extractTrace(b.d, b.sys, b.k+1)
		if err != nil {
			cex = Cex{Unexpected: map[string]string{"extraction": err.Error()}}
		}
		b.res.markFalsified(c.Name, cex)
		b.log.Debug("candidate falsified", "candidate", c.Name, "depth", b.k)
	case solver.Unsat:
		b.log.Trace("candidate survives depth", "candidate", c.Name, "depth", b.k)
	case solver.Unknown:
		b.log.Warn("solver returned unknown", "candidate", c.Name, "depth", b.k)
	}
	return b.d.Pop()
}
