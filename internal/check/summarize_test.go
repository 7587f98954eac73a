package check

import (
	"reflect"
	"testing"

	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/sys/fixtures"
)

func buildRes(s *sys.Sys, okay []string, falsified []string) CheckRes {
	r := newCheckRes(s)
	for _, name := range okay {
		r.markOkay(name)
	}
	for _, name := range falsified {
		r.markFalsified(name, Cex{})
	}
	return *r
}

func TestSummarizeSafeWhenFullyInductive(t *testing.T) {
	s := fixtures.Counter()
	base := BaseRes{buildRes(s, []string{"nonneg"}, nil)}
	step := StepRes{buildRes(s, []string{"nonneg"}, nil)}
	final := buildRes(s, []string{"nonneg"}, nil)

	v := Summarize(base, step, final)
	if v.Status != Safe {
		t.Errorf("status = %v, want %v", v.Status, Safe)
	}
	if !reflect.DeepEqual(v.Inductive, []string{"nonneg"}) {
		t.Errorf("Inductive = %v", v.Inductive)
	}
}

func TestSummarizeUnsafeOnBaseFalsification(t *testing.T) {
	s := fixtures.CounterUnsafeInit()
	base := BaseRes{buildRes(s, nil, []string{"nonneg"})}
	step := StepRes{buildRes(s, []string{"nonneg"}, nil)}
	final := buildRes(s, nil, []string{"nonneg"})

	v := Summarize(base, step, final)
	if v.Status != Unsafe {
		t.Errorf("status = %v, want %v", v.Status, Unsafe)
	}
	if len(v.BaseFalsified) != 1 || v.BaseFalsified[0] != "nonneg" {
		t.Errorf("BaseFalsified = %v", v.BaseFalsified)
	}
}

func TestSummarizeMightBeUnsafeWhenBmcExhaustsBoundUnresolved(t *testing.T) {
	s := fixtures.CounterBoundedUnsound()
	base := BaseRes{buildRes(s, []string{"le10"}, nil)}
	step := StepRes{buildRes(s, nil, []string{"le10"})}
	final := buildRes(s, []string{"le10"}, nil) // BMC ran out of bound, still okay

	v := Summarize(base, step, final)
	if v.Status != MightBeUnsafe {
		t.Errorf("status = %v, want %v", v.Status, MightBeUnsafe)
	}
	if len(v.BmcFalsified) != 0 {
		t.Errorf("BmcFalsified = %v, want none", v.BmcFalsified)
	}
}

func TestSummarizeUnsafeWhenBmcFalsifiesConcretely(t *testing.T) {
	s := fixtures.CounterBoundedUnsound()
	base := BaseRes{buildRes(s, []string{"le10"}, nil)}
	step := StepRes{buildRes(s, nil, []string{"le10"})}
	final := buildRes(s, nil, []string{"le10"}) // BMC found a concrete falsification

	v := Summarize(base, step, final)
	if v.Status != Unsafe {
		t.Errorf("status = %v, want %v", v.Status, Unsafe)
	}
	if len(v.BmcFalsified) != 1 || v.BmcFalsified[0] != "le10" {
		t.Errorf("BmcFalsified = %v", v.BmcFalsified)
	}
}
