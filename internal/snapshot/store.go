// Package snapshot implements the Configuration Snapshot Store: capturing,
// reloading, and comparing the feature model's current assignment as a
// plain name->value mapping, grounded on the teacher's
// pkg/reporting.Storage persistence discipline (open, act, close, log).
package snapshot

import (
	"fmt"

	"github.com/dorina-sfi/configfix-harness/internal/harnesserr"
	"github.com/dorina-sfi/configfix-harness/pkg/kconfig"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

// Snapshot is a symbol name -> serialized value mapping captured by value,
// never by pointer into engine-owned storage.
type Snapshot map[string]string

// Store backs up, resets, and compares configuration state for one Adapter.
type Store struct {
	engine *kconfig.Engine
	logger *reporting.Logger
}

// New returns a Store bound to engine.
func New(engine *kconfig.Engine, logger *reporting.Logger) *Store {
	return &Store{engine: engine, logger: logger}
}

// Backup iterates every symbol and records a (name -> value) entry for each
// non-Unknown symbol carrying a non-empty string value. Duplicate names
// cannot occur here (the engine's symbol table is keyed by name), so
// nothing is logged for them.
func (s *Store) Backup() Snapshot {
	values := s.engine.SnapshotValues()
	snap := make(Snapshot, len(values))
	for k, v := range values {
		snap[k] = v
	}
	return snap
}

// Reset reloads the configuration from configPath (the file loaded at
// startup, not necessarily the one the Adapter loaded last) and returns a fresh Snapshot taken immediately after the reload, for
// callers that want to Compare against it.
func (s *Store) Reset(configPath string) (Snapshot, error) {
	if err := s.engine.LoadConfig(configPath); err != nil {
		s.logger.Warn("Configuration reset failed", "path", configPath, "error", err)
		return nil, fmt.Errorf("%w: %v", harnesserr.ErrResetFailure, err)
	}
	return s.Backup(), nil
}

// Compare returns the count of mismatching symbols between the current
// assignment and snap. Unknown-typed and valueless symbols are skipped (they
// were never in a Snapshot to begin with). A symbol present in the current
// assignment but absent from snap counts as one mismatch. Zero means
// identity.
func (s *Store) Compare(snap Snapshot) int {
	current := s.engine.SnapshotValues()
	mismatches := 0
	for name, curVal := range current {
		snapVal, ok := snap[name]
		if !ok {
			mismatches++
			continue
		}
		if snapVal != curVal {
			mismatches++
		}
	}
	return mismatches
}
