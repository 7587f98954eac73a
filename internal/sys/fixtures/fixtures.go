// Package fixtures builds the example transition systems used by tests and
// cmd/mikino, in place of the surface-syntax files the original mikino
// project parsed them from (out of scope for this engine's core).
package fixtures

import (
	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/term"
)

// must and check panic on construction errors: every fixture here is a
// fixed, hand-checked literal system, so a failure can only mean a bug in
// this file, not bad external input.
func must(t term.Term, err error) term.Term {
	if err != nil {
		panic(err)
	}
	return t
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// Counter is the trivial safe counter: a single Int variable
// counting up from 0, proved non-negative by both base and step.
func Counter() *sys.Sys {
	b := sys.NewBuilder()
	cnt, _ := b.AddVar("cnt", term.Int)
	v, p := &term.VarRef{Decl: cnt}, &term.PreRef{Decl: cnt}

	check(b.SetInit(must(term.NewApp(term.Eq, v, term.IntConstI(0)))))
	check(b.SetTrans(must(term.NewApp(term.Eq, v, must(term.NewApp(term.Add, p, term.IntConstI(1)))))))
	check(b.AddCandidate("nonneg", must(term.NewApp(term.Geq, v, term.IntConstI(0)))))

	s, err := b.Build()
	check(err)
	return s
}

// CounterUnsafeInit is the trivial unsafe-init scenario: the same
// counter, but starting at -1, which falsifies "nonneg" immediately.
func CounterUnsafeInit() *sys.Sys {
	b := sys.NewBuilder()
	cnt, _ := b.AddVar("cnt", term.Int)
	v, p := &term.VarRef{Decl: cnt}, &term.PreRef{Decl: cnt}

	check(b.SetInit(must(term.NewApp(term.Eq, v, term.IntConstI(-1)))))
	check(b.SetTrans(must(term.NewApp(term.Eq, v, must(term.NewApp(term.Add, p, term.IntConstI(1)))))))
	check(b.AddCandidate("nonneg", must(term.NewApp(term.Geq, v, term.IntConstI(0)))))

	s, err := b.Build()
	check(err)
	return s
}

// CounterBoundedUnsound is the non-inductive scenario: "le10" holds in
// the initial state and for the first ten steps (cnt = 0..10), but it is
// not 1-inductive: cnt=10 satisfies le10 and trans steps it to 11. Base
// proves it, step falsifies it, and BMC finds a concrete falsification at
// depth 11 (a 12-state trace) once max_k is at least 11.
func CounterBoundedUnsound() *sys.Sys {
	b := sys.NewBuilder()
	cnt, _ := b.AddVar("cnt", term.Int)
	v, p := &term.VarRef{Decl: cnt}, &term.PreRef{Decl: cnt}

	check(b.SetInit(must(term.NewApp(term.Eq, v, term.IntConstI(0)))))
	check(b.SetTrans(must(term.NewApp(term.Eq, v, must(term.NewApp(term.Add, p, term.IntConstI(1)))))))
	check(b.AddCandidate("le10", must(term.NewApp(term.Leq, v, term.IntConstI(10)))))

	s, err := b.Build()
	check(err)
	return s
}

// Stopwatch is adapted from the original project's rsc/stopwatch_max.rs
// fixture: a play/pause/reset stopwatch with a saturating counter bounded
// by a runtime-chosen max, demonstrating Bool+Int mixed state and nested
// ite in the transition relation.
func Stopwatch() *sys.Sys {
	b := sys.NewBuilder()
	playPause, _ := b.AddVar("play_pause", term.Bool)
	reset, _ := b.AddVar("reset", term.Bool)
	running, _ := b.AddVar("running", term.Bool)
	paused, _ := b.AddVar("paused", term.Bool)
	saturated, _ := b.AddVar("saturated", term.Bool)
	count, _ := b.AddVar("count", term.Int)
	max, _ := b.AddVar("max", term.Int)

	vPlayPause, pPlayPause := &term.VarRef{Decl: playPause}, &term.PreRef{Decl: playPause}
	vReset := &term.VarRef{Decl: reset}
	vRunning, pRunning := &term.VarRef{Decl: running}, &term.PreRef{Decl: running}
	vPaused, pPaused := &term.VarRef{Decl: paused}, &term.PreRef{Decl: paused}
	vSaturated := &term.VarRef{Decl: saturated}
	vCount, pCount := &term.VarRef{Decl: count}, &term.PreRef{Decl: count}
	vMax, pMax := &term.VarRef{Decl: max}, &term.PreRef{Decl: max}

	and := func(terms ...term.Term) term.Term { return must(term.NewApp(term.And, terms...)) }
	not := func(t term.Term) term.Term { return must(term.NewApp(term.Not, t)) }
	eq := func(l, r term.Term) term.Term { return must(term.NewApp(term.Eq, l, r)) }
	implies := func(l, r term.Term) term.Term { return must(term.NewApp(term.Implies, l, r)) }
	ite := func(c, t, e term.Term) term.Term { return must(term.NewIte(c, t, e)) }

	init := and(
		vPaused,
		not(vRunning),
		eq(vCount, term.IntConstI(0)),
		must(term.NewApp(term.Leq, term.IntConstI(1), vMax)),
		must(term.NewApp(term.Leq, vMax, term.IntConstI(128))),
		eq(vSaturated, eq(vCount, vMax)),
	)
	check(b.SetInit(init))

	modeFlip := and(not(pPlayPause), vPlayPause)
	modeSwitch := ite(modeFlip,
		and(
			implies(pRunning, and(vPaused, not(vRunning))),
			implies(pPaused, and(vRunning, not(vPaused))),
		),
		and(eq(vRunning, pRunning), eq(vPaused, pPaused)),
	)

	atMax := and(vRunning, not(eq(pCount, vMax)))
	countStep := ite(vReset,
		eq(vCount, term.IntConstI(0)),
		ite(atMax,
			eq(vCount, must(term.NewApp(term.Add, pCount, term.IntConstI(1)))),
			eq(vCount, pCount),
		),
	)

	trans := and(
		eq(vMax, pMax),
		modeSwitch,
		countStep,
		eq(vSaturated, eq(vCount, vMax)),
	)
	check(b.SetTrans(trans))

	check(b.AddCandidate("count in range", and(
		must(term.NewApp(term.Leq, term.IntConstI(0), vCount)),
		must(term.NewApp(term.Leq, vCount, term.IntConstI(128))),
	)))
	check(b.AddCandidate("max in range", and(
		must(term.NewApp(term.Leq, term.IntConstI(0), vMax)),
		must(term.NewApp(term.Leq, vMax, term.IntConstI(128))),
	)))
	check(b.AddCandidate("count real range", and(
		must(term.NewApp(term.Leq, term.IntConstI(0), vCount)),
		must(term.NewApp(term.Leq, vCount, vMax)),
	)))
	check(b.AddCandidate("count positive", must(term.NewApp(term.Geq, vCount, term.IntConstI(0)))))
	check(b.AddCandidate("reset semantics", implies(vReset, eq(vCount, term.IntConstI(0)))))
	check(b.AddCandidate("modes are exclusive", must(term.NewApp(term.Or, not(vRunning), not(vPaused)))))
	check(b.AddCandidate("one mode active", must(term.NewApp(term.Or, vRunning, vPaused))))

	s, err := b.Build()
	check(err)
	return s
}

// UnknownOp is adapted from rsc/unknown_op.rs: the same stopwatch idea
// without the saturating max, whose "count in range" candidate is bounded
// by a fixed literal 128 rather than a symbolic max.
func UnknownOp() *sys.Sys {
	b := sys.NewBuilder()
	playPause, _ := b.AddVar("play_pause", term.Bool)
	reset, _ := b.AddVar("reset", term.Bool)
	running, _ := b.AddVar("running", term.Bool)
	paused, _ := b.AddVar("paused", term.Bool)
	count, _ := b.AddVar("count", term.Int)

	vPlayPause, pPlayPause := &term.VarRef{Decl: playPause}, &term.PreRef{Decl: playPause}
	vReset := &term.VarRef{Decl: reset}
	vRunning, pRunning := &term.VarRef{Decl: running}, &term.PreRef{Decl: running}
	vPaused, pPaused := &term.VarRef{Decl: paused}, &term.PreRef{Decl: paused}
	vCount, pCount := &term.VarRef{Decl: count}, &term.PreRef{Decl: count}

	and := func(terms ...term.Term) term.Term { return must(term.NewApp(term.And, terms...)) }
	not := func(t term.Term) term.Term { return must(term.NewApp(term.Not, t)) }
	eq := func(l, r term.Term) term.Term { return must(term.NewApp(term.Eq, l, r)) }
	implies := func(l, r term.Term) term.Term { return must(term.NewApp(term.Implies, l, r)) }
	ite := func(c, t, e term.Term) term.Term { return must(term.NewIte(c, t, e)) }

	check(b.SetInit(and(
		vPaused,
		not(vRunning),
		eq(vCount, term.IntConstI(0)),
	)))

	modeFlip := and(not(pPlayPause), vPlayPause)
	modeSwitch := implies(modeFlip, and(
		implies(pRunning, and(vPaused, not(vRunning))),
		implies(pPaused, and(vRunning, not(vPaused))),
	))
	countStep := ite(vReset,
		eq(vCount, term.IntConstI(0)),
		and(
			implies(vRunning, eq(vCount, must(term.NewApp(term.Add, pCount, term.IntConstI(1))))),
			implies(vPaused, eq(vCount, pCount)),
		),
	)
	check(b.SetTrans(and(modeSwitch, countStep)))

	check(b.AddCandidate("count in range", and(
		must(term.NewApp(term.Leq, term.IntConstI(0), vCount)),
		must(term.NewApp(term.Leq, vCount, term.IntConstI(128))),
	)))
	check(b.AddCandidate("count positive", must(term.NewApp(term.Geq, vCount, term.IntConstI(0)))))
	check(b.AddCandidate("reset semantics", implies(vReset, eq(vCount, term.IntConstI(0)))))
	check(b.AddCandidate("modes are exclusive", must(term.NewApp(term.Or, not(vRunning), not(vPaused)))))
	check(b.AddCandidate("one mode active", must(term.NewApp(term.Or, vRunning, vPaused))))

	s, err := b.Build()
	check(err)
	return s
}
