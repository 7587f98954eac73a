package check

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/sys/fixtures"
)

// assertPartition asserts the §3.4 partition invariant: every candidate name
// of s is in exactly one of okay or cexs.
func assertPartition(t *testing.T, s *sys.Sys, r CheckRes) {
	t.Helper()
	for _, name := range s.CandidateNames() {
		_, inOkay := r.okay[name]
		_, inCexs := r.cexs[name]
		assert.NotEqualf(t, inOkay, inCexs, "candidate %q must be in exactly one of okay/cexs", name)
		assert.True(t, inOkay || inCexs, "candidate %q missing from both okay and cexs", name)
	}
}

func TestFullRunRespectsPartitionInvariant(t *testing.T) {
	s := fixtures.Counter()

	baseD := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())
	base, err := Base(baseD, s, nil)
	require.NoError(t, err)
	assertPartition(t, s, base.CheckRes)

	stepD := solver.NewWithIO(&bytes.Buffer{}, bytes.NewReader([]byte("unsat\n")), solver.NewConfig())
	step, err := Step(stepD, s, nil)
	require.NoError(t, err)
	assertPartition(t, s, step.CheckRes)

	seed, err := base.MergeWithStep(step)
	require.NoError(t, err)
	assertPartition(t, s, seed)

	// Both base and step discharged "nonneg"; the merge rule keeps every
	// base-okay candidate okay in the seed, so "nonneg" is still there.
	assert.Equal(t, []string{"nonneg"}, seed.OkayNames())
}

func TestMergeRejectsMismatchedSystems(t *testing.T) {
	counter := fixtures.Counter()
	unsafeInit := fixtures.CounterUnsafeInit()

	base := BaseRes{buildRes(counter, []string{"nonneg"}, nil)}
	step := StepRes{buildRes(unsafeInit, []string{"nonneg"}, nil)}

	_, err := base.MergeWithStep(step)
	require.Error(t, err)
}
