package kconfig

// maxDiagnoses bounds how many distinct repair sets Resolve returns for a
// single conflict, keeping the search bounded without a real SAT backend.
const maxDiagnoses = 5

// maxFixDepth bounds how many symbols deep the solver will chase a blocking
// dependency chain before giving up on a branch. A real RangeFix run over a
// SAT encoding has no such limit; this engine trades completeness on
// pathological deep chains for a solver that terminates without an external
// solver dependency.
const maxFixDepth = 3

// Resolve computes a bounded set of diagnoses that would let every entry in
// wanted be assigned its target value. Each Fix in wanted must already name
// a known symbol; Resolve never mutates engine state — every candidate is
// tried against a saved/restored snapshot of the symbols it touches.
func (e *Engine) Resolve(wanted []Fix) Solution {
	var branches [][]Diagnosis // one branch per wanted entry; each branch is a set of alternative fix-chains
	for _, w := range wanted {
		sym, ok := e.FindSymbol(w.Symbol)
		if !ok {
			return nil
		}
		if !sym.Type.IsBoolOrTristate() {
			// A genuinely string-typed symbol has no dependency ceiling or
			// floor to chase; the fix is simply the assignment itself,
			// regardless of which FixKind label it was given.
			branches = append(branches, []Diagnosis{{w}})
			continue
		}
		target := w.TargetTri
		if w.Kind == FixNonBoolean {
			// Preserves the inverted-naming quirk: a Tristate-typed symbol
			// in the wanted set is tagged FixNonBoolean, but its target is
			// still a tristate value, here carried in TargetStr as "n"/"m"/"y".
			if v, ok := ParseTristate(tristateWord(w.TargetStr)); ok {
				target = v
			}
		}
		if e.TristateInRange(sym, target) {
			branches = append(branches, []Diagnosis{{w}})
			continue
		}
		alts := e.relaxAlternatives(sym, target, maxFixDepth, map[string]bool{sym.Name: true})
		if len(alts) == 0 {
			// This wanted entry cannot be unblocked at all: the whole
			// conflict is unsolvable, matching the spec's "resolver returns
			// empty solution set" case.
			return nil
		}
		branches = append(branches, alts)
	}

	var out Solution
	for _, combo := range cartesianDiagnoses(branches) {
		if len(out) >= maxDiagnoses {
			break
		}
		diag := flattenCombo(combo)
		if e.verifyDiagnosisInSimulation(diag) {
			out = append(out, diag)
		}
	}
	return out
}

// relaxAlternatives returns every distinct fix-chain that would bring sym's
// dependency range to admit target, each chain ending in sym's own
// assignment. depth bounds recursion into the prerequisite chain; visited
// prevents cycles through mutually dependent symbols.
func (e *Engine) relaxAlternatives(sym *Symbol, target Tristate, depth int, visited map[string]bool) []Diagnosis {
	if depth <= 0 {
		return nil
	}
	ceiling := sym.DirDep.Eval()
	floor := sym.RevDep.Eval()

	var leaves []*Expr
	var relaxTo Tristate
	switch {
	case target > ceiling:
		leaves = sym.DirDep.leaves()
		relaxTo = Yes
	case target < floor:
		leaves = sym.RevDep.leaves()
		relaxTo = No
	default:
		return []Diagnosis{{{Symbol: sym.Name, Kind: FixBoolean, TargetTri: target}}}
	}

	var alts []Diagnosis
	for _, leaf := range leaves {
		if leaf.Sym == nil || leaf.Sym.Name == ModSymbolName || visited[leaf.Sym.Name] {
			continue
		}
		if !leaf.Sym.changeable {
			continue
		}
		chain := e.fixChainFor(leaf.Sym, relaxTo, depth-1, visited)
		if chain == nil {
			continue
		}
		full := append(append(Diagnosis{}, chain...), Fix{Symbol: sym.Name, Kind: FixBoolean, TargetTri: target})
		alts = append(alts, full)
		if len(alts) >= maxDiagnoses {
			break
		}
	}
	return alts
}

// fixChainFor returns the first viable ordered chain of fixes that brings
// leaf to want, recursing into leaf's own blocking chain when want is out
// of leaf's current range. It intentionally takes the first alternative
// rather than branching further: a chain is already one candidate inside
// the caller's own alternative set.
func (e *Engine) fixChainFor(leaf *Symbol, want Tristate, depth int, visited map[string]bool) Diagnosis {
	if !leaf.Type.IsBoolOrTristate() {
		return nil
	}
	if leaf.Type == TypeBool && want == Mod {
		want = Yes
	}
	if e.TristateInRange(leaf, want) {
		return Diagnosis{{Symbol: leaf.Name, Kind: FixBoolean, TargetTri: want}}
	}
	if depth <= 0 {
		return nil
	}
	nextVisited := make(map[string]bool, len(visited)+1)
	for k := range visited {
		nextVisited[k] = true
	}
	nextVisited[leaf.Name] = true
	alts := e.relaxAlternatives(leaf, want, depth, nextVisited)
	if len(alts) == 0 {
		return nil
	}
	return alts[0]
}

// cartesianDiagnoses expands per-wanted-entry alternative sets into full
// combinations, one Diagnosis chosen per branch per combination.
func cartesianDiagnoses(branches [][]Diagnosis) [][]Diagnosis {
	if len(branches) == 0 {
		return [][]Diagnosis{nil}
	}
	rest := cartesianDiagnoses(branches[1:])
	var out [][]Diagnosis
	for _, d := range branches[0] {
		for _, r := range rest {
			combo := append([]Diagnosis{d}, r...)
			out = append(out, combo)
			if len(out) >= maxDiagnoses*maxDiagnoses {
				return out
			}
		}
	}
	return out
}

// flattenCombo concatenates one chosen chain per wanted entry into a single
// Diagnosis, in the order the spec's diagnosis files print fixes:
// dependency fixes before the fix that depended on them.
func flattenCombo(combo []Diagnosis) Diagnosis {
	var diag Diagnosis
	for _, chain := range combo {
		diag = append(diag, chain...)
	}
	return diag
}

// verifyDiagnosisInSimulation applies diag against a saved copy of every
// symbol it touches, checks TristateInRange held at each step, then restores
// the saved values regardless of outcome. Resolve must never leave engine
// state mutated as a side effect of searching.
func (e *Engine) verifyDiagnosisInSimulation(diag Diagnosis) bool {
	type saved struct {
		tri Tristate
		str string
	}
	backup := make(map[string]saved)
	for _, fix := range diag {
		sym, ok := e.FindSymbol(fix.Symbol)
		if !ok {
			return false
		}
		if _, done := backup[fix.Symbol]; !done {
			backup[fix.Symbol] = saved{tri: sym.Tri, str: sym.Str}
		}
	}
	defer func() {
		for name, s := range backup {
			sym := e.symbols[name]
			sym.Tri = s.tri
			sym.Str = s.str
		}
	}()

	ok := true
	for _, fix := range diag {
		sym := e.symbols[fix.Symbol]
		if sym.Type.IsBoolOrTristate() {
			target := fix.TargetTri
			if fix.Kind == FixNonBoolean {
				if v, parsed := ParseTristate(tristateWord(fix.TargetStr)); parsed {
					target = v
				}
			}
			if !e.TristateInRange(sym, target) {
				ok = false
			}
			e.setTristate(sym, target)
		} else {
			e.setString(sym, fix.TargetStr)
		}
	}
	return ok
}
