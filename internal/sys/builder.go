package sys

import (
	"fmt"

	"github.com/lhaig/mikino/internal/term"
)

// Builder constructs a well-formed Sys incrementally, rejecting anything
// that would violate a §3 invariant at the point it is added. This is the
// interface a surface-syntax parser (out of scope for this engine) targets
// when turning a system description into a Sys; it is equally usable
// directly, as the fixtures in internal/sys/fixtures do.
type Builder struct {
	names map[string]struct{}
	decls []term.Decl

	init  term.Term
	trans term.Term

	candidateNames map[string]struct{}
	candidates     []Candidate
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		names:          make(map[string]struct{}),
		candidateNames: make(map[string]struct{}),
	}
}

// AddVar declares a new state variable. name must be non-empty and unique
// among variable declarations.
func (b *Builder) AddVar(name string, sort term.Sort) (term.Decl, error) {
	return b.AddVarWidth(name, sort, 0)
}

// AddVarWidth is AddVar with an explicit display width, used only by
// presentation code.
func (b *Builder) AddVarWidth(name string, sort term.Sort, width int) (term.Decl, error) {
	if name == "" {
		return term.Decl{}, fmt.Errorf("variable declaration: name must not be empty")
	}
	if _, exists := b.names[name]; exists {
		return term.Decl{}, fmt.Errorf("variable declaration: %q already declared", name)
	}
	d := term.Decl{Name: name, Sort: sort, Width: width}
	b.names[name] = struct{}{}
	b.decls = append(b.decls, d)
	return d, nil
}

// SetInit sets the initial predicate. Its free variables must all be
// declared and it must not contain pre.
func (b *Builder) SetInit(t term.Term) error {
	if t.Sort() != term.Bool {
		return fmt.Errorf("init: predicate must be Bool, got %s", t.Sort())
	}
	if term.HasPre(t) {
		return fmt.Errorf("init: predicate must not contain pre")
	}
	if err := b.checkDeclared(t, "init"); err != nil {
		return err
	}
	b.init = t
	return nil
}

// SetTrans sets the transition predicate. Both pre v and v may appear;
// every free variable must still be declared.
func (b *Builder) SetTrans(t term.Term) error {
	if t.Sort() != term.Bool {
		return fmt.Errorf("trans: predicate must be Bool, got %s", t.Sort())
	}
	if err := b.checkDeclared(t, "trans"); err != nil {
		return err
	}
	b.trans = t
	return nil
}

// AddCandidate adds a named proof objective. Its predicate must be Bool,
// contain no pre, refer only to declared variables, and its name must be
// unique.
func (b *Builder) AddCandidate(name string, t term.Term) error {
	if name == "" {
		return fmt.Errorf("candidate: name must not be empty")
	}
	if _, exists := b.candidateNames[name]; exists {
		return fmt.Errorf("candidate %q: name already used", name)
	}
	if t.Sort() != term.Bool {
		return fmt.Errorf("candidate %q: predicate must be Bool, got %s", name, t.Sort())
	}
	if term.HasPre(t) {
		return fmt.Errorf("candidate %q: predicate must not contain pre", name)
	}
	if err := b.checkDeclared(t, fmt.Sprintf("candidate %q", name)); err != nil {
		return err
	}
	b.candidateNames[name] = struct{}{}
	b.candidates = append(b.candidates, Candidate{Name: name, Pred: t})
	return nil
}

func (b *Builder) checkDeclared(t term.Term, context string) error {
	for name := range term.FreeVars(t) {
		if _, ok := b.names[name]; !ok {
			return fmt.Errorf("%s: reference to undeclared variable %q", context, name)
		}
	}
	return nil
}

// Build validates that init and trans have both been set and returns the
// finished, immutable Sys. An empty declaration set is not rejected.
func (b *Builder) Build() (*Sys, error) {
	if b.init == nil {
		return nil, fmt.Errorf("build: initial predicate was never set")
	}
	if b.trans == nil {
		return nil, fmt.Errorf("build: transition predicate was never set")
	}

	s := &Sys{
		decls:          append([]term.Decl(nil), b.decls...),
		init:           b.init,
		trans:          b.trans,
		candidates:     append([]Candidate(nil), b.candidates...),
		declIndex:      make(map[string]int, len(b.decls)),
		candidateIndex: make(map[string]int, len(b.candidates)),
	}
	for i, d := range s.decls {
		s.declIndex[d.Name] = i
	}
	for i, c := range s.candidates {
		s.candidateIndex[c.Name] = i
	}
	return s, nil
}
