package term

import (
	"fmt"
	"math/big"
)

// Op is one of the fixed operators this engine's term model supports.
type Op int

const (
	And Op = iota
	Or
	Not
	Implies
	Eq
	Add
	Sub
	Mul
	Div
	Mod
	Divide // rational division "/"
	Lt
	Leq
	Geq
	Gt
)

func (o Op) String() string {
	switch o {
	case And:
		return "and"
	case Or:
		return "or"
	case Not:
		return "not"
	case Implies:
		return "=>"
	case Eq:
		return "="
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case Divide:
		return "/"
	case Lt:
		return "<"
	case Leq:
		return "<="
	case Geq:
		return ">="
	case Gt:
		return ">"
	default:
		return "<invalid op>"
	}
}

// Term is a node of the typed expression tree. Every node knows its own
// sort; construction functions enforce arity and operand-sort rules so an
// ill-typed Term can never be built.
type Term interface {
	Sort() Sort
	String() string
}

// Const is a sort-tagged literal: a bool, an arbitrary-precision integer,
// or an exact rational.
type Const struct {
	sort Sort
	B    bool
	I    *big.Int
	R    *big.Rat
}

func (c *Const) Sort() Sort { return c.sort }

func (c *Const) String() string {
	switch c.sort {
	case Bool:
		if c.B {
			return "true"
		}
		return "false"
	case Int:
		return smtInt(c.I)
	case Rat:
		return smtRat(c.R)
	default:
		return "<invalid const>"
	}
}

// smtInt renders an arbitrary-precision integer as an SMT-LIB numeral,
// wrapping negative values in "(- <abs>)" since a numeral token itself
// carries no sign.
func smtInt(i *big.Int) string {
	if i.Sign() < 0 {
		return "(- " + new(big.Int).Neg(i).String() + ")"
	}
	return i.String()
}

// smtRat renders an exact rational as SMT-LIB's "(/ num den)" form; a
// bare "num/den" token is not a legal numeral or symbol. The numerator
// carries the sign (big.Rat always normalizes the denominator positive).
func smtRat(r *big.Rat) string {
	den := r.Denom().String()
	if r.Num().Sign() < 0 {
		return "(/ (- " + new(big.Int).Neg(r.Num()).String() + ") " + den + ")"
	}
	return "(/ " + r.Num().String() + " " + den + ")"
}

// BoolConst builds a Boolean constant.
func BoolConst(b bool) *Const { return &Const{sort: Bool, B: b} }

// IntConst builds an integer constant from an arbitrary-precision value.
func IntConst(i *big.Int) *Const { return &Const{sort: Int, I: new(big.Int).Set(i)} }

// IntConstI builds an integer constant from a machine int, for convenience.
func IntConstI(i int64) *Const { return &Const{sort: Int, I: big.NewInt(i)} }

// RatConst builds a rational constant from an exact value.
func RatConst(r *big.Rat) *Const { return &Const{sort: Rat, R: new(big.Rat).Set(r)} }

// RatConstI builds a rational constant from a numerator/denominator pair.
func RatConstI(num, den int64) *Const { return &Const{sort: Rat, R: big.NewRat(num, den)} }

// VarRef is a current-state reference to a declared variable.
type VarRef struct {
	Decl Decl
}

func (v *VarRef) Sort() Sort     { return v.Decl.Sort }
func (v *VarRef) String() string { return v.Decl.Name }

// PreRef is a reference to the previous-state version of a declared
// variable ("pre v"). Forbidden inside initial and candidate predicates;
// the builder enforces that, not this type.
type PreRef struct {
	Decl Decl
}

func (p *PreRef) Sort() Sort     { return p.Decl.Sort }
func (p *PreRef) String() string { return fmt.Sprintf("(pre %s)", p.Decl.Name) }

// App is an operator applied to typed operand terms.
type App struct {
	Op     Op
	Args   []Term
	result Sort
}

func (a *App) Sort() Sort { return a.result }

func (a *App) String() string {
	s := "(" + a.Op.String()
	for _, arg := range a.Args {
		s += " " + arg.String()
	}
	return s + ")"
}

// Ite is an if-then-else: a Boolean condition and two branches of
// identical sort.
type Ite struct {
	Cond, Then, Else Term
}

func (i *Ite) Sort() Sort { return i.Then.Sort() }

func (i *Ite) String() string {
	return fmt.Sprintf("(ite %s %s %s)", i.Cond.String(), i.Then.String(), i.Else.String())
}

// NewIte builds an if-then-else, checking that the condition is Boolean
// and both branches share a sort.
func NewIte(cond, then, els Term) (Term, error) {
	if cond.Sort() != Bool {
		return nil, fmt.Errorf("ite: condition must be Bool, got %s", cond.Sort())
	}
	if then.Sort() != els.Sort() {
		return nil, fmt.Errorf("ite: branches have differing sorts %s and %s", then.Sort(), els.Sort())
	}
	return &Ite{Cond: cond, Then: then, Else: els}, nil
}

// NewApp builds an operator application, enforcing the arity and
// operand-sort rules for each operator.
func NewApp(op Op, args ...Term) (Term, error) {
	if err := checkArity(op, args); err != nil {
		return nil, err
	}
	result, err := checkOperands(op, args)
	if err != nil {
		return nil, err
	}
	return &App{Op: op, Args: args, result: result}, nil
}

func checkArity(op Op, args []Term) error {
	n := len(args)
	switch op {
	case Not:
		if n != 1 {
			return fmt.Errorf("%s: expected 1 argument, got %d", op, n)
		}
	case And, Or:
		if n < 1 {
			return fmt.Errorf("%s: expected at least 1 argument, got %d", op, n)
		}
	case Implies:
		if n < 2 {
			return fmt.Errorf("%s: expected at least 2 arguments, got %d", op, n)
		}
	case Eq, Div, Mod, Divide, Lt, Leq, Geq, Gt:
		if n != 2 {
			return fmt.Errorf("%s: expected 2 arguments, got %d", op, n)
		}
	case Add, Mul:
		if n < 1 {
			return fmt.Errorf("%s: expected at least 1 argument, got %d", op, n)
		}
	case Sub:
		if n < 1 {
			return fmt.Errorf("%s: expected at least 1 argument (unary negate) or 2+, got %d", op, n)
		}
	default:
		return fmt.Errorf("unknown operator %v", op)
	}
	return nil
}

func checkOperands(op Op, args []Term) (Sort, error) {
	switch op {
	case Not, And, Or, Implies:
		for _, a := range args {
			if a.Sort() != Bool {
				return 0, fmt.Errorf("%s: operand must be Bool, got %s", op, a.Sort())
			}
		}
		return Bool, nil
	case Eq:
		if args[0].Sort() != args[1].Sort() {
			return 0, fmt.Errorf("=: operands have differing sorts %s and %s", args[0].Sort(), args[1].Sort())
		}
		return Bool, nil
	case Lt, Leq, Geq, Gt:
		return checkNumericPair(op, args)
	case Add, Sub, Mul:
		return checkNumericVariadic(op, args)
	case Div, Mod:
		for _, a := range args {
			if a.Sort() != Int {
				return 0, fmt.Errorf("%s: operands must be Int, got %s", op, a.Sort())
			}
		}
		return Int, nil
	case Divide:
		for _, a := range args {
			if a.Sort() != Rat {
				return 0, fmt.Errorf("/: operands must be Rat, got %s", a.Sort())
			}
		}
		return Rat, nil
	default:
		return 0, fmt.Errorf("unknown operator %v", op)
	}
}

func checkNumericPair(op Op, args []Term) (Sort, error) {
	if !args[0].Sort().Numeric() || !args[1].Sort().Numeric() {
		return 0, fmt.Errorf("%s: operands must be numeric, got %s and %s", op, args[0].Sort(), args[1].Sort())
	}
	if args[0].Sort() != args[1].Sort() {
		return 0, fmt.Errorf("%s: operands have differing sorts %s and %s", op, args[0].Sort(), args[1].Sort())
	}
	return Bool, nil
}

func checkNumericVariadic(op Op, args []Term) (Sort, error) {
	s := args[0].Sort()
	if !s.Numeric() {
		return 0, fmt.Errorf("%s: operand must be numeric, got %s", op, s)
	}
	for _, a := range args[1:] {
		if a.Sort() != s {
			return 0, fmt.Errorf("%s: operands have differing sorts %s and %s", op, s, a.Sort())
		}
	}
	return s, nil
}
