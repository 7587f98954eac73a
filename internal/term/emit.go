package term

import (
	"fmt"
	"strconv"
	"strings"
)

// StateSymbol is the SMT-LIB symbol name for variable v at state index s:
// "<var>@<index>".
func StateSymbol(name string, s int) string {
	return name + "@" + strconv.Itoa(s)
}

// EmitAt renders t as SMT-LIB text with every free current-state reference
// pinned to state s and every "pre v" shifted to state s-1.
//
// Emitting a "pre" at s == 0 is a programmer-error invariant violation: the
// spec guarantees it never happens because initial and candidate predicates
// are built without pre by construction, and trans is only ever emitted at
// s >= 1. A construction bug that violates this is a programming error, not
// a runtime condition callers can recover from, so it panics rather than
// returning an error.
func EmitAt(t Term, s int) string {
	var sb strings.Builder
	emit(&sb, t, s)
	return sb.String()
}

func emit(sb *strings.Builder, t Term, s int) {
	switch n := t.(type) {
	case *Const:
		sb.WriteString(n.String())
	case *VarRef:
		sb.WriteString(StateSymbol(n.Decl.Name, s))
	case *PreRef:
		if s == 0 {
			panic(fmt.Sprintf("emit: pre %q referenced at state 0", n.Decl.Name))
		}
		sb.WriteString(StateSymbol(n.Decl.Name, s-1))
	case *App:
		sb.WriteString("(")
		sb.WriteString(n.Op.String())
		for _, arg := range n.Args {
			sb.WriteString(" ")
			emit(sb, arg, s)
		}
		sb.WriteString(")")
	case *Ite:
		sb.WriteString("(ite ")
		emit(sb, n.Cond, s)
		sb.WriteString(" ")
		emit(sb, n.Then, s)
		sb.WriteString(" ")
		emit(sb, n.Else, s)
		sb.WriteString(")")
	default:
		panic(fmt.Sprintf("emit: unhandled term type %T", t))
	}
}

// FreeVars returns the set of declared variable names t refers to, whether
// as a current-state VarRef or a PreRef.
func FreeVars(t Term) map[string]struct{} {
	out := make(map[string]struct{})
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Term, out map[string]struct{}) {
	switch n := t.(type) {
	case *Const:
	case *VarRef:
		out[n.Decl.Name] = struct{}{}
	case *PreRef:
		out[n.Decl.Name] = struct{}{}
	case *App:
		for _, arg := range n.Args {
			collectFreeVars(arg, out)
		}
	case *Ite:
		collectFreeVars(n.Cond, out)
		collectFreeVars(n.Then, out)
		collectFreeVars(n.Else, out)
	}
}

// HasPre reports whether t contains any "pre" reference.
func HasPre(t Term) bool {
	switch n := t.(type) {
	case *PreRef:
		return true
	case *App:
		for _, arg := range n.Args {
			if HasPre(arg) {
				return true
			}
		}
		return false
	case *Ite:
		return HasPre(n.Cond) || HasPre(n.Then) || HasPre(n.Else)
	default:
		return false
	}
}
