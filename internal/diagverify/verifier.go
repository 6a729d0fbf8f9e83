// Package diagverify implements the Diagnosis Verifier: for each candidate
// diagnosis, apply it (with a bounded permutation retry), verify it actually
// resolved the conflict, persist the diagnosis file, and restore
// BaseConfig before the next one is tried.
package diagverify

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dorina-sfi/configfix-harness/internal/harnesserr"
	"github.com/dorina-sfi/configfix-harness/internal/model"
	"github.com/dorina-sfi/configfix-harness/internal/snapshot"
	"github.com/dorina-sfi/configfix-harness/pkg/kconfig"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

// Result is the per-diagnosis outcome the Result Log consumes.
type Result struct {
	Index        int
	Size         int
	Resolved     bool
	Applied      bool
	ConfigsMatch bool
	Permutations int
	ErrReset     bool
}

// Verifier runs the apply/verify/reset cycle for one conflict's diagnoses.
type Verifier struct {
	adapter    *model.Adapter
	store      *snapshot.Store
	logger     *reporting.Logger
	sampleDir  string
	configPath string
}

// New returns a Verifier bound to adapter, using store for backup/reset and
// writing diagnosis/forensic files under sampleDir.
func New(adapter *model.Adapter, store *snapshot.Store, logger *reporting.Logger, sampleDir, configPath string) *Verifier {
	return &Verifier{adapter: adapter, store: store, logger: logger, sampleDir: sampleDir, configPath: configPath}
}

// Verify runs the full cycle for diagnosis index i (1-based) against
// wanted, the conflict's wanted set, and baseConfig, the snapshot the
// configuration must be restored to before returning.
func (v *Verifier) Verify(i int, diag kconfig.Diagnosis, wanted []kconfig.Fix, baseConfig snapshot.Snapshot) (Result, error) {
	res := Result{Index: i, Size: len(diag)}

	resolved, applied, permutations, ok := v.applyLoop(diag, wanted)
	res.Resolved = resolved
	res.Applied = applied
	res.Permutations = permutations

	status := "FAILURE"
	if resolved {
		status = "SUCCESS"
	}
	v.logger.Info("Conflict resolution status",
		"status", status, "permutations_tested", permutations, "diagnosis_index", i)

	if !ok {
		// apply failed on the first attempt (applyLoop stops there); reset and
		// flag ERR_RESET if the reset itself left a mismatch.
		if _, err := v.store.Reset(v.configPath); err != nil {
			res.ErrReset = true
		} else if v.store.Compare(baseConfig) != 0 {
			res.ErrReset = true
		}
		return res, nil
	}

	name := "VALID"
	if !resolved {
		name = "INVALID"
	}
	diagPath, err := v.saveDiagnosis(i, diag, name)
	if err != nil {
		v.logger.Warn("Failed to persist diagnosis file", "error", err)
	} else {
		v.logger.Debug("Diagnosis persisted", "path", diagPath)
	}

	backupPath := filepath.Join(v.sampleDir, fmt.Sprintf(".config.diag%02d", i))
	if err := v.adapter.WriteConfig(backupPath); err != nil {
		v.logger.Warn("Failed to write diagnosis backup config", "error", err)
	} else {
		justWritten := v.store.Backup()
		if err := v.adapter.LoadConfig(backupPath); err != nil {
			v.logger.Warn("Failed to reload diagnosis backup config", "error", err)
		} else {
			res.ConfigsMatch = v.store.Compare(justWritten) == 0
		}
	}

	if _, err := v.store.Reset(v.configPath); err != nil {
		v.logger.Warn("Reset after diagnosis verification failed", "error", err)
		res.ErrReset = true
	} else if v.store.Compare(baseConfig) != 0 {
		v.logger.Warn("Reset after diagnosis verification left a mismatch")
		res.ErrReset = true
	}

	return res, nil
}

// applyLoop runs up to two attempts of diag, matching the source's bounded
// retry: an apply failure aborts immediately (the caller resets and flags
// ERR_RESET, the same as the source's config_reset()+break), and a second
// attempt is only tried when the first applied cleanly but did not resolve
// the conflict.
func (v *Verifier) applyLoop(diag kconfig.Diagnosis, wanted []kconfig.Fix) (resolved, applied bool, permutations int, ok bool) {
	perms := permutationsOf(diag, 2)
	for _, perm := range perms {
		permutations++
		if !v.adapter.Apply(perm) {
			return resolved, applied, permutations, ok
		}
		if err := v.adapter.WriteConfig(filepath.Join(v.sampleDir, ".config.applied")); err != nil {
			v.logger.Warn("Failed to write forensic .config.applied", "error", err)
		}
		resolved = v.verifyResolution(wanted)
		applied = v.verifyFixTargetValues(perm)
		ok = true
		if resolved {
			return resolved, applied, permutations, ok
		}
	}
	return resolved, applied, permutations, ok
}

// permutationsOf returns up to max copies of diag. The source's apply loop
// retries with sfix_list_copy(diag) on both iterations — the identical
// diagnosis copied verbatim, never reordered — so this does the same rather
// than permuting.
func permutationsOf(diag kconfig.Diagnosis, max int) []kconfig.Diagnosis {
	if max <= 1 {
		return []kconfig.Diagnosis{diag}
	}
	out := make([]kconfig.Diagnosis, max)
	for i := range out {
		cp := make(kconfig.Diagnosis, len(diag))
		copy(cp, diag)
		out[i] = cp
	}
	return out
}

// verifyResolution checks every wanted entry's symbol now holds its target
// tristate value. Unlike the source, which looked the symbol up by the
// target-value string (a bug), this looks up by symbol name — the fix
// called for in the design notes, recorded in DESIGN.md.
func (v *Verifier) verifyResolution(wanted []kconfig.Fix) bool {
	for _, w := range wanted {
		sym, ok := v.adapter.FindSymbol(w.Symbol)
		if !ok {
			return false
		}
		target := w.TargetTri
		if w.Kind == kconfig.FixNonBoolean {
			if parsed, pOk := kconfig.ParseTristate(tristateWord(w.TargetStr)); pOk {
				target = parsed
			}
		}
		if v.adapter.GetTristate(sym) != target {
			return false
		}
	}
	return true
}

// verifyFixTargetValues checks every fix in perm actually landed: tristate
// comparison for boolean-or-tristate symbols, string comparison otherwise.
func (v *Verifier) verifyFixTargetValues(perm kconfig.Diagnosis) bool {
	for _, fix := range perm {
		sym, ok := v.adapter.FindSymbol(fix.Symbol)
		if !ok {
			return false
		}
		props := v.adapter.SymbolProps(sym)
		if props.IsBooleanOrTristate {
			target := fix.TargetTri
			if fix.Kind == kconfig.FixNonBoolean {
				if parsed, pOk := kconfig.ParseTristate(tristateWord(fix.TargetStr)); pOk {
					target = parsed
				}
			}
			if v.adapter.GetTristate(sym) != target {
				return false
			}
		} else if v.adapter.GetString(sym) != fix.TargetStr {
			return false
		}
	}
	return true
}

func tristateWord(s string) string {
	switch s {
	case "y":
		return "YES"
	case "m":
		return "MODULE"
	case "n":
		return "NO"
	default:
		return s
	}
}

// saveDiagnosis writes diagNN.<name>.txt, one "NAME => value" line per fix:
// tristate char for boolean-typed fixes, raw string for non-boolean-typed
// fixes — mirroring sym_fix_get_string_value's split in the original source.
func (v *Verifier) saveDiagnosis(i int, diag kconfig.Diagnosis, name string) (string, error) {
	path := filepath.Join(v.sampleDir, fmt.Sprintf("diag%02d.%s.txt", i, name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", harnesserr.ErrIOError, err)
	}
	defer f.Close()

	for _, fix := range diag {
		value := fix.TargetStr
		if fix.Kind == kconfig.FixBoolean {
			value = string(fix.TargetTri.Char())
		}
		if _, err := fmt.Fprintf(f, "%s => %s\n", fix.Symbol, value); err != nil {
			return "", fmt.Errorf("%w: %v", harnesserr.ErrIOError, err)
		}
	}
	return path, nil
}
