// Package conflict implements the Conflict Generator: picking conflict_size
// distinct conflict-candidate symbols from the cached menu sequence and a
// target value for each, then persisting the result as conflict.txt under a
// freshly numbered conflict.NNN directory.
package conflict

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dorina-sfi/configfix-harness/internal/harnesserr"
	"github.com/dorina-sfi/configfix-harness/internal/model"
	"github.com/dorina-sfi/configfix-harness/internal/stats"
	"github.com/dorina-sfi/configfix-harness/pkg/kconfig"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

// Generator draws a Conflict from an Adapter's current menu sequence.
type Generator struct {
	adapter *model.Adapter
	logger  *reporting.Logger
}

// New returns a Generator bound to adapter.
func New(adapter *model.Adapter, logger *reporting.Logger) *Generator {
	return &Generator{adapter: adapter, logger: logger}
}

// Generate draws conflictSize distinct candidate symbols and a target value
// for each, returning the resulting Conflict. It returns
// harnesserr.ErrNoCandidates when candidateCount is zero, and
// harnesserr.ErrInvariantViolation if a drawn index does not resolve to any
// candidate at all. A candidate whose only blocked value is its current
// one (see pickTarget) is not an error; it degrades to a No target.
func (g *Generator) Generate(conflictSize, candidateCount int) (model.Conflict, error) {
	if conflictSize == 0 {
		return nil, nil
	}
	if candidateCount == 0 {
		g.logger.Error("No conflict could be generated", "reason", "zero candidates")
		return nil, harnesserr.ErrNoCandidates
	}
	if conflictSize > candidateCount {
		return nil, fmt.Errorf("%w: conflict_size %d exceeds candidate_count %d",
			harnesserr.ErrInvariantViolation, conflictSize, candidateCount)
	}

	menus := g.adapter.MenusPreorder()
	chosen := make(map[string]bool, conflictSize)
	var conflict model.Conflict

	for len(conflict) < conflictSize {
		idx := 1 + g.adapter.Rand().Intn(candidateCount)
		sym := g.pick(menus, idx)
		if sym == nil {
			return nil, fmt.Errorf("%w: index %d did not resolve to a candidate", harnesserr.ErrInvariantViolation, idx)
		}
		if chosen[sym.Name] {
			// Distinct-entries invariant: re-draw rather than accept the
			// duplicate the source would have (see design notes).
			continue
		}

		target, err := g.pickTarget(sym)
		if err != nil {
			return nil, err
		}

		chosen[sym.Name] = true
		conflict = append(conflict, model.ConflictEntry{
			SymbolName: sym.Name,
			SymbolType: sym.Type,
			Original:   g.adapter.GetTristate(sym),
			Target:     target,
		})
	}

	return conflict, nil
}

// pick scans menus in order, counting candidate menus, and returns the
// symbol whose running count equals idx.
func (g *Generator) pick(menus []*kconfig.MenuNode, idx int) *kconfig.Symbol {
	count := 0
	engine := g.adapter
	for _, m := range menus {
		if m.Sym == nil {
			continue
		}
		if !stats.Candidate(adapterEngine(engine), m.Sym) {
			continue
		}
		count++
		if count == idx {
			return m.Sym
		}
	}
	return nil
}

// pickTarget computes the blocked candidate values for sym, excluding its
// current value, and resolves the final target: take the one remaining
// value, or choose uniformly between two. If excluding the current value
// leaves nothing — the candidate's only blocked value was the one it
// already holds — this falls through to No with no error, matching
// random_blocked_value's own fallthrough in the source: it logs and
// returns no rather than aborting generation.
func (g *Generator) pickTarget(sym *kconfig.Symbol) (kconfig.Tristate, error) {
	current := g.adapter.GetTristate(sym)
	var blocked []kconfig.Tristate
	if !g.adapter.TristateInRange(sym, kconfig.No) {
		blocked = append(blocked, kconfig.No)
	}
	if sym.Type == kconfig.TypeTristate && !g.adapter.TristateInRange(sym, kconfig.Mod) {
		blocked = append(blocked, kconfig.Mod)
	}
	if !g.adapter.DependsOnMod(sym) && !g.adapter.TristateInRange(sym, kconfig.Yes) {
		blocked = append(blocked, kconfig.Yes)
	}
	blocked = excludeValue(blocked, current)

	switch len(blocked) {
	case 0:
		g.logger.Warn("No blocked value left after excluding current value", "symbol", sym.Name)
		return kconfig.No, nil
	case 1:
		return blocked[0], nil
	default:
		return blocked[g.adapter.Rand().Intn(len(blocked))], nil
	}
}

// adapterEngine is a narrow accessor so Generator can reuse stats.Candidate,
// which needs the raw *kconfig.Engine that Adapter.Engine exposes.
func adapterEngine(a *model.Adapter) *kconfig.Engine {
	return a.Engine()
}

// excludeValue returns values with target removed (at most one occurrence,
// which is all that can appear here).
func excludeValue(values []kconfig.Tristate, target kconfig.Tristate) []kconfig.Tristate {
	out := values[:0:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

var conflictDirRe = regexp.MustCompile(`^conflict\.(\d+)$`)

// Save persists conflict as conflict.txt inside a freshly numbered
// conflict.NNN directory under sampleDir, returning the conflict file path.
func Save(sampleDir string, c model.Conflict, adapter *model.Adapter) (string, error) {
	n, err := nextConflictDirNumber(sampleDir)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(sampleDir, fmt.Sprintf("conflict.%03d", n))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", harnesserr.ErrIOError, err)
	}

	path := filepath.Join(dir, "conflict.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", harnesserr.ErrIOError, err)
	}
	defer f.Close()

	var b strings.Builder
	for _, entry := range c {
		sym, ok := adapter.FindSymbol(entry.SymbolName)
		fmt.Fprintf(&b, "%s: %c => %c\n", entry.SymbolName, entry.Original.Char(), entry.Target.Char())
		if ok {
			fmt.Fprintf(&b, "      Direct dependencies: %s\n", sym.DirDep.String())
			if sym.RevDep != nil && sym.RevDep.Op != kconfig.ExprConst {
				fmt.Fprintf(&b, "      Reverse dependencies: %s\n", sym.RevDep.String())
			}
		}
		b.WriteString("\n")
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return "", fmt.Errorf("%w: %v", harnesserr.ErrIOError, err)
	}
	return path, nil
}

// nextConflictDirNumber scans sampleDir for existing conflict.NNN entries
// and returns one greater than the maximum suffix found (0 if none exist).
func nextConflictDirNumber(sampleDir string) (int, error) {
	entries, err := os.ReadDir(sampleDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", harnesserr.ErrIOError, err)
	}
	max := -1
	var nums []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := conflictDirRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	if len(nums) > 0 {
		max = nums[len(nums)-1]
	}
	return max + 1, nil
}
