package kconfig

// SymbolType mirrors the type lattice a Kconfig symbol can carry.
type SymbolType int

const (
	TypeUnknown SymbolType = iota
	TypeBool
	TypeTristate
	TypeString
	TypeInt
	TypeHex
)

// String returns the lowercase name used in stats log lines.
func (t SymbolType) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeTristate:
		return "tristate"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeHex:
		return "hex"
	default:
		return "unknown"
	}
}

// IsBoolOrTristate reports whether the type participates in range checking.
func (t SymbolType) IsBoolOrTristate() bool {
	return t == TypeBool || t == TypeTristate
}

// Symbol is a named feature: a type, a current value, and the dependency
// expressions that bound the values it may currently take.
type Symbol struct {
	Name string
	Type SymbolType

	// Tri holds the current value for Bool/Tristate symbols.
	Tri Tristate
	// Str holds the current value for String/Int/Hex symbols.
	Str string

	// DirDep bounds the ceiling a Bool/Tristate symbol may be promoted to:
	// it may never be assigned a value above DirDep.Eval().
	DirDep *Expr
	// RevDep is the disjunction of every "select SYM" expression pointing at
	// this symbol; it forces a floor value (a selected symbol cannot be
	// pushed below what selects it).
	RevDep *Expr

	// Prompt is the prompt text given on the symbol's model line, if any.
	Prompt    string
	HasPrompt bool
	IsChoice  bool
	// visible is set from HasPrompt when the model is parsed. It is not
	// re-evaluated against any dependency expression afterwards.
	visible bool
	// changeable caches whether a user (or the resolver) may assign this
	// symbol at all; choices and non-prompted symbols are not.
	changeable bool
}

// stringValue renders the current value the way sym_get_string_value does:
// "y"/"m"/"n" for Bool/Tristate, the raw string otherwise.
func (s *Symbol) stringValue() string {
	if s.Type.IsBoolOrTristate() {
		return string(s.Tri.Char())
	}
	return s.Str
}
