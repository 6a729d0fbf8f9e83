package kconfig

import "fmt"

// Engine owns the global symbol table and menu tree for one model. It is
// single-owner and thread-hostile by design: callers serialize access the
// same way the adapter that wraps it does.
type Engine struct {
	Root    *MenuNode
	symbols map[string]*Symbol
	order   []string // insertion order, for deterministic iteration
}

// NewEngine returns an empty engine with a synthetic root menu node.
func NewEngine() *Engine {
	return &Engine{
		Root:    &MenuNode{Prompt: ""},
		symbols: make(map[string]*Symbol),
	}
}

// ParseModel loads the model file at path into the engine's symbol table and
// menu tree. It is idempotent per process in the sense that calling it a
// second time simply rebuilds the table from scratch; callers (the Adapter)
// only ever call it once per run, as the spec requires.
func (e *Engine) ParseModel(path string) error {
	root, syms, order, err := parseModelFile(path)
	if err != nil {
		return fmt.Errorf("parse model %s: %w", path, err)
	}
	e.Root = root
	e.symbols = syms
	e.order = order
	return nil
}

// FindSymbol looks up a symbol by name; ok is false when it is unknown to
// the loaded model.
func (e *Engine) FindSymbol(name string) (*Symbol, bool) {
	s, ok := e.symbols[name]
	return s, ok
}

// MustSymbol is FindSymbol for callers that already guarantee the name came
// from the loaded model (e.g. a ConflictEntry round-tripped through the CSV).
func (e *Engine) MustSymbol(name string) *Symbol {
	return e.symbols[name]
}

// Symbols returns every symbol in stable, first-declared-first order.
func (e *Engine) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(e.order))
	for _, n := range e.order {
		out = append(out, e.symbols[n])
	}
	return out
}

// MenusPreorder returns the deterministic sequence of every menu node whose
// subtree-or-self carries a prompt, matching menus_preorder() of the spec.
// Prompt-less wrapper nodes are descended into, as documented on
// MenuNode.Menus.
func (e *Engine) MenusPreorder() []*MenuNode {
	all := e.Root.Menus()
	out := make([]*MenuNode, 0, len(all))
	for _, m := range all {
		if subtreeHasPrompt(m) {
			out = append(out, m)
		}
	}
	return out
}

func subtreeHasPrompt(m *MenuNode) bool {
	if m.HasPrompt() {
		return true
	}
	for _, c := range m.Children {
		if subtreeHasPrompt(c) {
			return true
		}
	}
	return false
}

// SymbolProps is the read-only property bundle the spec's symbol_props
// operation returns.
type SymbolProps struct {
	Type               SymbolType
	HasPrompt          bool
	IsVisible          bool
	IsChangeable       bool
	IsChoice           bool
	IsBooleanOrTristate bool
}

// Props computes SymbolProps for sym.
func (e *Engine) Props(sym *Symbol) SymbolProps {
	return SymbolProps{
		Type:                sym.Type,
		HasPrompt:           sym.HasPrompt,
		IsVisible:           sym.visible,
		IsChangeable:        sym.changeable,
		IsChoice:            sym.IsChoice,
		IsBooleanOrTristate: sym.Type.IsBoolOrTristate(),
	}
}

// TristateInRange reports whether assigning v to sym respects its direct and
// reverse dependency bounds: dir_dep is a ceiling, rev_dep is a floor.
func (e *Engine) TristateInRange(sym *Symbol, v Tristate) bool {
	if sym == nil || !sym.Type.IsBoolOrTristate() {
		return false
	}
	ceiling := sym.DirDep.Eval()
	floor := sym.RevDep.Eval()
	if sym.Type == TypeBool && v == Mod {
		return false
	}
	return v <= ceiling && v >= floor
}

// DependsOnMod reports whether sym's direct dependency expression mentions
// the MOD pseudo-symbol, mirroring expr_contains_symbol(sym->dir_dep.expr,
// &symbol_mod) in the original source.
func (e *Engine) DependsOnMod(sym *Symbol) bool {
	if sym == nil {
		return false
	}
	return sym.DirDep.ContainsSymbol(ModSymbolName)
}

// GetTristate returns the current tristate value of a Bool/Tristate symbol.
func (e *Engine) GetTristate(sym *Symbol) Tristate {
	return sym.Tri
}

// GetString returns the current serialized value of any symbol.
func (e *Engine) GetString(sym *Symbol) string {
	return sym.stringValue()
}

// setTristate assigns v directly, bypassing range checks — used by Apply
// and by config loading, both of which have already decided the assignment
// is legitimate (or are deliberately forcing a conflict target).
func (e *Engine) setTristate(sym *Symbol, v Tristate) {
	sym.Tri = v
}

// setString assigns a raw string value to a String/Int/Hex symbol.
func (e *Engine) setString(sym *Symbol, v string) {
	sym.Str = v
}

// Apply assigns every fix in a diagnosis in order. It returns false, with no
// rollback, the instant one fix cannot be placed in range — matching the
// spec's "partial failure → false, no rollback performed by the adapter".
//
// Apply dispatches on the symbol's own SymbolType, not on Fix.Kind: Kind is
// a labeling concern for the wanted-set/diagnosis-file layers (see the
// FixKind doc comment), and applying a fix must work the same way whichever
// label a Tristate-typed symbol happened to be tagged with.
func (e *Engine) Apply(d Diagnosis) bool {
	for _, fix := range d {
		sym, ok := e.FindSymbol(fix.Symbol)
		if !ok {
			return false
		}
		if sym.Type.IsBoolOrTristate() {
			if !e.TristateInRange(sym, fix.TargetTri) {
				return false
			}
			e.setTristate(sym, fix.TargetTri)
		} else {
			e.setString(sym, fix.TargetStr)
		}
	}
	return true
}
