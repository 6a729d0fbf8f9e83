package kconfig

// FixKind labels a Fix for the wanted-set and diagnosis-file layers. It is a
// display/bookkeeping tag, not an instruction to Engine.Apply (which
// dispatches on the symbol's own SymbolType instead).
//
// The tag is assigned by symbol TYPE and preserves a source quirk flagged
// as such rather than "fixed": a Fix against a Bool-typed symbol is tagged
// FixBoolean, but a Fix against a Tristate-typed symbol is tagged
// FixNonBoolean even though its target is still a tristate value, not a
// string. Only a genuine String/Int/Hex-typed symbol fix carries a real
// string target under FixNonBoolean. Conflict-generated wanted sets only
// ever name Boolean/Tristate symbols (§4.4's candidate predicate requires
// boolean_or_tristate), so in practice every FixNonBoolean produced by the
// Conflict Generator still has TargetTri populated — see
// internal/model.BuildWantedSet, the one place a wanted-set entry's tag is
// assigned. Fixes that Resolve synthesises for a diagnosis are always
// tagged FixBoolean, whatever the symbol's type.
type FixKind int

const (
	FixBoolean FixKind = iota
	FixNonBoolean
)

// Fix is a single proposed assignment. Engine.Apply sets a Bool/Tristate
// symbol to TargetTri and a String/Int/Hex symbol to TargetStr, whatever
// the Kind.
type Fix struct {
	Symbol    string
	Kind      FixKind
	TargetTri Tristate
	TargetStr string
}

// Diagnosis is an ordered list of fixes that together resolve a conflict.
type Diagnosis []Fix

// Solution is the ordered set of diagnoses a Resolve call returns; it may be
// empty when the conflict is unsolvable.
type Solution []Diagnosis
