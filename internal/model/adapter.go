// Package model wraps the kconfig engine behind the narrow contract the
// rest of the harness depends on, the same way the teacher's
// pkg/discovery/docker.Client wraps a raw SDK client behind a handful of
// methods its callers actually need.
//
// Single-owner, thread-hostile: exactly one Adapter touches one Engine at a
// time. Never call its methods from more than one goroutine.
package model

import (
	"fmt"
	"math/rand"

	"github.com/dorina-sfi/configfix-harness/internal/harnesserr"
	"github.com/dorina-sfi/configfix-harness/pkg/kconfig"
)

// Adapter is the Model Adapter: it owns the kconfig.Engine and the single
// seeded random source the Conflict Generator draws from.
type Adapter struct {
	engine     *kconfig.Engine
	rng        *rand.Rand
	configPath string
}

// New constructs an Adapter with a fresh engine and an RNG seeded with seed.
func New(seed int64) *Adapter {
	return &Adapter{
		engine: kconfig.NewEngine(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// ParseModel loads the model file once per process.
func (a *Adapter) ParseModel(path string) error {
	return a.engine.ParseModel(path)
}

// LoadConfig loads a configuration file and remembers its path for Reset.
func (a *Adapter) LoadConfig(path string) error {
	if err := a.engine.LoadConfig(path); err != nil {
		return fmt.Errorf("%w: %v", harnesserr.ErrConfigLoadFailure, err)
	}
	a.configPath = path
	return nil
}

// WriteConfig serializes the current assignment to path.
func (a *Adapter) WriteConfig(path string) error {
	return a.engine.WriteConfig(path)
}

// ConfigPath returns the path LoadConfig was last called with.
func (a *Adapter) ConfigPath() string {
	return a.configPath
}

// MenusPreorder returns the cached, deterministic menu sequence.
func (a *Adapter) MenusPreorder() []*kconfig.MenuNode {
	return a.engine.MenusPreorder()
}

// SymbolProps returns the read-only property bundle for sym.
func (a *Adapter) SymbolProps(sym *kconfig.Symbol) kconfig.SymbolProps {
	return a.engine.Props(sym)
}

// TristateInRange reports whether v respects sym's current dependency bounds.
func (a *Adapter) TristateInRange(sym *kconfig.Symbol, v kconfig.Tristate) bool {
	return a.engine.TristateInRange(sym, v)
}

// DependsOnMod reports whether sym's direct dependency mentions MOD.
func (a *Adapter) DependsOnMod(sym *kconfig.Symbol) bool {
	return a.engine.DependsOnMod(sym)
}

// GetTristate returns sym's current tristate value.
func (a *Adapter) GetTristate(sym *kconfig.Symbol) kconfig.Tristate {
	return a.engine.GetTristate(sym)
}

// GetString returns sym's current serialized value.
func (a *Adapter) GetString(sym *kconfig.Symbol) string {
	return a.engine.GetString(sym)
}

// FindSymbol looks up a symbol by name.
func (a *Adapter) FindSymbol(name string) (*kconfig.Symbol, bool) {
	return a.engine.FindSymbol(name)
}

// Resolve runs the bounded RangeFix-style search over wanted assignments.
func (a *Adapter) Resolve(wanted []kconfig.Fix) kconfig.Solution {
	return a.engine.Resolve(wanted)
}

// Apply assigns every fix in d; false on the first fix that cannot be
// placed in range, with no rollback performed by the adapter.
func (a *Adapter) Apply(d kconfig.Diagnosis) bool {
	return a.engine.Apply(d)
}

// Engine returns the underlying kconfig.Engine. It exists for
// internal/snapshot, internal/stats and internal/conflict (pkg/harness hands
// it to the first two), which need the symbol-table and menu/candidate scans
// the narrow public contract in §4.1 doesn't cover; it is not part of that
// contract.
func (a *Adapter) Engine() *kconfig.Engine {
	return a.engine
}

// Rand returns the adapter-owned random source. The Conflict Generator is
// the only caller; keeping a single engine (rather than the source's two —
// one for index draws, one via rand() for tiebreaks) is the consolidation
// called out in the design notes.
func (a *Adapter) Rand() *rand.Rand {
	return a.rng
}

// BuildWantedSet converts conflict entries into the wanted-set shape
// Resolve expects, assigning FixKind by symbol type. This is the one place
// the inverted-naming quirk documented on kconfig.FixKind is materialized:
// Bool-typed symbols are tagged FixBoolean; Tristate-typed symbols are
// tagged FixNonBoolean, with their tristate target carried as a string in
// TargetStr as well as natively in TargetTri so internal callers never have
// to special-case the label.
func BuildWantedSet(entries []ConflictEntry) []kconfig.Fix {
	wanted := make([]kconfig.Fix, 0, len(entries))
	for _, ce := range entries {
		fix := kconfig.Fix{Symbol: ce.SymbolName, TargetTri: ce.Target}
		if ce.SymbolType == kconfig.TypeBool {
			fix.Kind = kconfig.FixBoolean
		} else {
			fix.Kind = kconfig.FixNonBoolean
			fix.TargetStr = string(ce.Target.Char())
		}
		wanted = append(wanted, fix)
	}
	return wanted
}

// ConflictEntry is the (symbol, original, target) triple the Conflict
// Generator produces. It lives here, alongside the Adapter, because
// internal/conflict depends on model.Adapter to query the engine; putting
// the entry type on the other side of that dependency keeps the graph
// acyclic.
type ConflictEntry struct {
	SymbolName string
	SymbolType kconfig.SymbolType
	Original   kconfig.Tristate
	Target     kconfig.Tristate
}

// Conflict is an ordered list of distinct ConflictEntries, length conflict_size.
type Conflict []ConflictEntry
