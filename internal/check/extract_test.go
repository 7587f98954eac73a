package check

import (
	"testing"

	"github.com/lhaig/mikino/internal/solver"
	"github.com/lhaig/mikino/internal/term"
)

func sexpr(t *testing.T, text string) solver.SExpr {
	t.Helper()
	exprs, err := solver.ParseSExprs(text)
	if err != nil || len(exprs) != 1 {
		t.Fatalf("ParseSExprs(%q): %v", text, err)
	}
	return exprs[0]
}

func TestParseConstBool(t *testing.T) {
	c, err := parseConst(sexpr(t, "true"), term.Bool)
	if err != nil || c.String() != "true" {
		t.Fatalf("parseConst(true) = %v, %v", c, err)
	}
	if _, err := parseConst(sexpr(t, "3"), term.Bool); err == nil {
		t.Errorf("expected an error parsing 3 as Bool")
	}
}

func TestParseConstInt(t *testing.T) {
	c, err := parseConst(sexpr(t, "42"), term.Int)
	if err != nil || c.String() != "42" {
		t.Fatalf("parseConst(42) = %v, %v", c, err)
	}
	c, err = parseConst(sexpr(t, "(- 5)"), term.Int)
	if err != nil || c.String() != "(- 5)" {
		t.Fatalf("parseConst((- 5)) = %v, %v", c, err)
	}
}

func TestParseConstRat(t *testing.T) {
	c, err := parseConst(sexpr(t, "(/ 1 3)"), term.Rat)
	if err != nil || c.String() != "(/ 1 3)" {
		t.Fatalf("parseConst((/ 1 3)) = %v, %v", c, err)
	}
	c, err = parseConst(sexpr(t, "(- (/ 1 3))"), term.Rat)
	if err != nil || c.String() != "(/ (- 1) 3)" {
		t.Fatalf("parseConst((- (/ 1 3))) = %v, %v", c, err)
	}
}

func TestParseConstUnparsableIsAnError(t *testing.T) {
	if _, err := parseConst(sexpr(t, "(foo bar)"), term.Int); err == nil {
		t.Errorf("expected an error for an unrecognized Int expression")
	}
}
