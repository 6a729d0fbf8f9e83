package kconfig

import "strings"

// ExprOp identifies the shape of an Expr node.
type ExprOp int

const (
	// ExprConst is a literal tristate ceiling/floor (e.g. "y" for "no deps").
	ExprConst ExprOp = iota
	// ExprSymbol evaluates to the referenced symbol's current tristate value.
	ExprSymbol
	// ExprAnd takes the Min of its children (every operand must hold).
	ExprAnd
	// ExprOr takes the Max of its children (any operand suffices).
	ExprOr
	// ExprNot inverts Yes<->No and leaves Mod as Mod, mirroring Kconfig's
	// expr_calc_value for '!'.
	ExprNot
)

// ModSymbolName is the pseudo-symbol kernel Kconfig compares dependency
// expressions against to detect "depends on MOD"-style clauses.
const ModSymbolName = "MOD"

// Expr is a small Boolean/tristate dependency expression tree.
type Expr struct {
	Op       ExprOp
	Const    Tristate
	Sym      *Symbol // set when Op == ExprSymbol
	Children []*Expr
}

// ConstExpr builds a constant expression node.
func ConstExpr(v Tristate) *Expr { return &Expr{Op: ExprConst, Const: v} }

// SymExpr builds a node referencing another symbol's current value.
func SymExpr(sym *Symbol) *Expr { return &Expr{Op: ExprSymbol, Sym: sym} }

// And builds a conjunction of one or more expressions.
func And(children ...*Expr) *Expr { return &Expr{Op: ExprAnd, Children: children} }

// Or builds a disjunction of one or more expressions.
func Or(children ...*Expr) *Expr { return &Expr{Op: ExprOr, Children: children} }

// Not negates a single expression.
func Not(e *Expr) *Expr { return &Expr{Op: ExprNot, Children: []*Expr{e}} }

// Eval computes the expression's current tristate value from the live
// symbol table. A nil Expr (no dependency at all) is always Yes.
func (e *Expr) Eval() Tristate {
	if e == nil {
		return Yes
	}
	switch e.Op {
	case ExprConst:
		return e.Const
	case ExprSymbol:
		if e.Sym == nil {
			return No
		}
		return e.Sym.Tri
	case ExprAnd:
		v := Yes
		for _, c := range e.Children {
			v = Min(v, c.Eval())
		}
		return v
	case ExprOr:
		v := No
		for _, c := range e.Children {
			v = Max(v, c.Eval())
		}
		return v
	case ExprNot:
		switch e.Children[0].Eval() {
		case Yes:
			return No
		case No:
			return Yes
		default:
			return Mod
		}
	default:
		return Yes
	}
}

// ContainsSymbol reports whether the expression references a symbol named
// name anywhere in its tree — used by DependsOnMod to check for the MOD
// pseudo-symbol, mirroring expr_contains_symbol(sym->dir_dep.expr, &symbol_mod).
func (e *Expr) ContainsSymbol(name string) bool {
	if e == nil {
		return false
	}
	if e.Op == ExprSymbol && e.Sym != nil && e.Sym.Name == name {
		return true
	}
	for _, c := range e.Children {
		if c.ContainsSymbol(name) {
			return true
		}
	}
	return false
}

// String renders the expression the way expr_gstr_print does, for
// conflict.txt's "Direct dependencies: ..." / "Reverse dependencies: ..."
// lines.
func (e *Expr) String() string {
	if e == nil {
		return "(none)"
	}
	switch e.Op {
	case ExprConst:
		return e.Const.String()
	case ExprSymbol:
		if e.Sym == nil {
			return "<nil>"
		}
		return e.Sym.Name
	case ExprNot:
		return "!" + e.Children[0].String()
	case ExprAnd:
		return joinExpr(e.Children, " && ")
	case ExprOr:
		return joinExpr(e.Children, " || ")
	default:
		return "?"
	}
}

func joinExpr(children []*Expr, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// leaves collects every ExprSymbol leaf in pre-order, duplicates
// included — used by the solver to enumerate assignment candidates.
func (e *Expr) leaves() []*Expr {
	if e == nil {
		return nil
	}
	if e.Op == ExprSymbol {
		return []*Expr{e}
	}
	var out []*Expr
	for _, c := range e.Children {
		out = append(out, c.leaves()...)
	}
	return out
}
