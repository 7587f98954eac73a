package check

import (
	"fmt"
	"math/big"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/sys"
	"github.com/lhaig/mikino/internal/term"
)

// extractTrace requests a value for every declared variable at every state
// index 0..numSteps-1 and assembles a Cex. Parse failures for an individual
// symbol degrade into an Unexpected entry rather than aborting the whole
// extraction: the candidate is still reported falsified even if one value
// could not be interpreted. Symbols in a reply that were not requested are
// recorded in Unexpected as well.
func extractTrace(d *solver.Driver, s *sys.Sys, numSteps int) (Cex, error) {
	cex := Cex{
		Steps:      make([]map[string]*term.Const, numSteps),
		Unexpected: make(map[string]string),
	}
	for step := 0; step < numSteps; step++ {
		symbols := make([]string, len(s.Decls()))
		for i, decl := range s.Decls() {
			symbols[i] = term.StateSymbol(decl.Name, step)
		}
		model, err := d.GetValues(symbols)
		if err != nil {
			return Cex{}, fmt.Errorf("check: extracting values at step %d: %w", step, err)
		}

		assign := make(map[string]*term.Const, len(s.Decls()))
		for _, decl := range s.Decls() {
			sym := term.StateSymbol(decl.Name, step)
			val, ok := model[sym]
			if !ok {
				cex.Unexpected[sym] = "<no value returned>"
				continue
			}
			c, err := parseConst(val, decl.Sort)
			if err != nil {
				cex.Unexpected[sym] = val.String()
				continue
			}
			assign[decl.Name] = c
		}
		requested := make(map[string]struct{}, len(symbols))
		for _, sym := range symbols {
			requested[sym] = struct{}{}
		}
		for sym, val := range model {
			if _, ok := requested[sym]; !ok {
				cex.Unexpected[sym] = val.String()
			}
		}
		cex.Steps[step] = assign
	}
	return cex, nil
}

func parseConst(e solver.SExpr, want term.Sort) (*term.Const, error) {
	switch want {
	case term.Bool:
		if !e.IsAtom() {
			return nil, fmt.Errorf("not a Bool literal: %s", e.String())
		}
		switch e.Atom {
		case "true":
			return term.BoolConst(true), nil
		case "false":
			return term.BoolConst(false), nil
		default:
			return nil, fmt.Errorf("not a Bool literal: %s", e.Atom)
		}
	case term.Int:
		i, err := parseBigInt(e)
		if err != nil {
			return nil, err
		}
		return term.IntConst(i), nil
	case term.Rat:
		r, err := parseBigRat(e)
		if err != nil {
			return nil, err
		}
		return term.RatConst(r), nil
	default:
		return nil, fmt.Errorf("unsupported sort %s", want)
	}
}

// parseBigInt handles a plain decimal atom or Z3's "(- n)" negation form.
func parseBigInt(e solver.SExpr) (*big.Int, error) {
	if e.IsAtom() {
		i, ok := new(big.Int).SetString(e.Atom, 10)
		if !ok {
			return nil, fmt.Errorf("not an Int literal: %s", e.Atom)
		}
		return i, nil
	}
	if len(e.List) == 2 && e.List[0].IsAtom() && e.List[0].Atom == "-" {
		inner, err := parseBigInt(e.List[1])
		if err != nil {
			return nil, err
		}
		return new(big.Int).Neg(inner), nil
	}
	return nil, fmt.Errorf("not an Int literal: %s", e.String())
}

// parseBigRat handles a decimal atom, a fraction atom, "(- x)" negation, and
// Z3's "(/ num den)" division form.
func parseBigRat(e solver.SExpr) (*big.Rat, error) {
	if e.IsAtom() {
		r, ok := new(big.Rat).SetString(e.Atom)
		if !ok {
			return nil, fmt.Errorf("not a Real literal: %s", e.Atom)
		}
		return r, nil
	}
	if len(e.List) == 2 && e.List[0].IsAtom() && e.List[0].Atom == "-" {
		inner, err := parseBigRat(e.List[1])
		if err != nil {
			return nil, err
		}
		return new(big.Rat).Neg(inner), nil
	}
	if len(e.List) == 3 && e.List[0].IsAtom() && e.List[0].Atom == "/" {
		num, err := parseBigInt(e.List[1])
		if err != nil {
			return nil, err
		}
		den, err := parseBigInt(e.List[2])
		if err != nil {
			return nil, err
		}
		return new(big.Rat).SetFrac(num, den), nil
	}
	return nil, fmt.Errorf("not a Real literal: %s", e.String())
}
