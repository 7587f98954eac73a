package check

import "sort"

// Status is the overall classification Summarize assigns to a system.
type Status string

const (
	// Safe: no candidate was falsified at base or step — every candidate
	// is inductive and so holds in every reachable state.
	Safe Status = "safe"
	// Unsafe: some candidate was falsified at the initial state, or BMC
	// found a concrete falsification within its bound.
	Unsafe Status = "unsafe"
	// MightBeUnsafe: induction failed for some candidate (it is not
	// preserved by the transition relation) but BMC found no concrete
	// falsification within the depth it searched.
	MightBeUnsafe Status = "might be unsafe"
)

// Verdict is a plain-data classification of a full base/step/BMC run,
// intended for a front end to render however it likes (text, JSON,
// exit code) without repeating the classification logic itself.
type Verdict struct {
	Status Status

	// Inductive holds candidates that passed both base and step: proven to
	// hold in every reachable state.
	Inductive []string
	// BaseFalsified holds candidates falsified in the initial state(s).
	BaseFalsified []string
	// StepFalsified holds candidates not preserved by the transition
	// relation (non-inductive), independent of whether BMC later falsified
	// them concretely.
	StepFalsified []string
	// BmcFalsified holds candidates BMC falsified concretely, beyond what
	// base already falsified.
	BmcFalsified []string
	// BmcUnresolved holds candidates still okay after BMC's search bound:
	// no falsification was found, but that is not a safety proof.
	BmcUnresolved []string
}

// Summarize classifies a completed run: base and step results from
// induction, and final the CheckRes BMC produced from their merged seed
// (or the seed itself, unchanged, if BMC never ran because nothing needed
// it).
func Summarize(base BaseRes, step StepRes, final CheckRes) Verdict {
	v := Verdict{}

	for _, name := range base.sys.CandidateNames() {
		if base.IsOkay(name) && step.IsOkay(name) {
			v.Inductive = append(v.Inductive, name)
		}
	}
	v.BaseFalsified = base.FalsifiedNames()
	v.StepFalsified = step.FalsifiedNames()
	for _, name := range final.FalsifiedNames() {
		if _, isBase := base.cexs[name]; !isBase {
			v.BmcFalsified = append(v.BmcFalsified, name)
		}
	}
	v.BmcUnresolved = final.OkayNames()

	sort.Strings(v.Inductive)
	sort.Strings(v.BmcFalsified)

	switch {
	case len(v.BaseFalsified) == 0 && len(v.StepFalsified) == 0:
		v.Status = Safe
	case len(v.BaseFalsified) > 0 || len(v.BmcFalsified) > 0:
		v.Status = Unsafe
	default:
		v.Status = MightBeUnsafe
	}
	return v
}
