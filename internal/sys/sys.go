// Package sys defines the transition-system model (Sys): the ordered
// variable declarations, the initial and transition predicates, and the
// ordered set of named candidate predicates a checker tries to prove.
package sys

import "github.com/lhaig/mikino/internal/term"

// Candidate is a single named proof objective.
type Candidate struct {
	Name string
	Pred term.Term
}

// Sys is an immutable transition system: (V, init, trans, candidates).
// Build one with a Builder; there is no other way to construct a
// well-formed Sys, so every Sys in the program satisfies the §3
// invariants by construction.
type Sys struct {
	decls      []term.Decl
	init       term.Term
	trans      term.Term
	candidates []Candidate

	declIndex      map[string]int
	candidateIndex map[string]int
}

// Decls returns the ordered variable declarations.
func (s *Sys) Decls() []term.Decl { return s.decls }

// Init returns the initial predicate.
func (s *Sys) Init() term.Term { return s.init }

// Trans returns the transition predicate.
func (s *Sys) Trans() term.Term { return s.trans }

// Candidates returns the ordered name->predicate candidate set.
func (s *Sys) Candidates() []Candidate { return s.candidates }

// CandidateNames returns the set of candidate names, in declaration order.
func (s *Sys) CandidateNames() []string {
	names := make([]string, len(s.candidates))
	for i, c := range s.candidates {
		names[i] = c.Name
	}
	return names
}

// Candidate looks up a candidate's predicate by name.
func (s *Sys) Candidate(name string) (term.Term, bool) {
	i, ok := s.candidateIndex[name]
	if !ok {
		return nil, false
	}
	return s.candidates[i].Pred, true
}

// HasCandidate reports whether name is a declared candidate.
func (s *Sys) HasCandidate(name string) bool {
	_, ok := s.candidateIndex[name]
	return ok
}

// MaxDeclWidth returns the widest declared display width, used only by
// presentation code aligning counterexample traces.
func (s *Sys) MaxDeclWidth() int {
	max := 0
	for _, d := range s.decls {
		w := d.Width
		if w == 0 {
			w = len(d.Name)
		}
		if w > max {
			max = w
		}
	}
	return max
}
