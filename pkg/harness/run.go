// Package harness ties the Model Adapter, Snapshot Store, Statistics
// Collector, Conflict Generator, Diagnosis Verifier, and Result Log into
// the single-conflict pipeline one invocation runs. Grounded on
// pkg/fuzz.Runner.Run's banner/seed/summary loop structure and
// pkg/core/orchestrator.Orchestrator.Execute's staged, logged progression —
// reworked from a multi-round fuzz loop into one pass over one conflict.
package harness

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dorina-sfi/configfix-harness/internal/conflict"
	"github.com/dorina-sfi/configfix-harness/internal/diagverify"
	"github.com/dorina-sfi/configfix-harness/internal/harnesserr"
	"github.com/dorina-sfi/configfix-harness/internal/model"
	"github.com/dorina-sfi/configfix-harness/internal/resultlog"
	"github.com/dorina-sfi/configfix-harness/internal/snapshot"
	"github.com/dorina-sfi/configfix-harness/internal/stats"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

// Run executes exactly one conflict-generation-and-resolution pipeline:
// parse model, load config, capture BaseConfig, collect stats, generate a
// conflict, resolve it, verify each diagnosis, append CSV rows. Looping over
// probability levels or architectures is the out-of-scope outer driver;
// this runs once per invocation.
func Run(ctx context.Context, rc RunContext, logger *reporting.Logger) error {
	sessionID := uuid.New().String()
	logger.Info("Starting configfix test run",
		"session", sessionID, "arch", rc.Arch, "probability", rc.Probability,
		"conflict_size", rc.ConflictSize, "seed", rc.Seed)

	adapter := model.New(rc.Seed)
	if err := adapter.ParseModel(rc.ModelPath); err != nil {
		return fmt.Errorf("%w: %v", harnesserr.ErrConfigLoadFailure, err)
	}
	if err := adapter.LoadConfig(rc.ConfigPath); err != nil {
		return err
	}

	menus := adapter.MenusPreorder()
	if len(menus) == 0 {
		logger.Error("Model produced no prompt-bearing menus")
		return harnesserr.ErrEmptyMenuIterator
	}

	store := snapshot.New(adapter.Engine(), logger)
	baseConfig := store.Backup()

	collector := stats.New(adapter.Engine(), logger)
	s := collector.Collect()

	log := resultlog.New(rc.CSVPath)

	if rc.ConflictSize == 0 {
		logger.Info("conflict_size is 0; nothing to do")
		return nil
	}

	gen := conflict.New(adapter, logger)
	c, err := gen.Generate(rc.ConflictSize, s.CandidateCount)
	if err != nil {
		logger.Error("No conflict could be generated", "error", err)
		return nil
	}

	conflictPath, err := conflict.Save(rc.SampleDir, c, adapter)
	if err != nil {
		logger.Warn("Failed to persist conflict.txt", "error", err)
	}

	wanted := model.BuildWantedSet(c)

	start := time.Now()
	solution := adapter.Resolve(wanted)
	elapsed := time.Since(start).Seconds()
	logger.Info("Conflict resolution complete", "seconds", elapsed, "solution_size", len(solution))

	baseRow := resultlog.Row{
		Arch:             rc.Arch,
		ConfigFileName:   filepath.Base(rc.ConfigPath),
		Probability:      rc.Probability,
		SymCount:         s.SymCount,
		TristatesPresent: s.TristatesPresent,
		EnabledCount:     s.EnabledCount,
		CandidateCount:   s.CandidateCount,
		ConflictFilePath: conflictPath,
		ConflictSize:     len(c),
		ResolutionSecs:   elapsed,
		SolutionSize:     len(solution),
	}

	if len(solution) == 0 {
		if err := log.Append(baseRow); err != nil {
			logger.Warn("Failed to append result row", "error", err)
		}
		return nil
	}

	verifier := diagverify.New(adapter, store, logger, rc.SampleDir, rc.ConfigPath)
	for i, diag := range solution {
		if ctx.Err() != nil {
			logger.Warn("Context cancelled between diagnoses; stopping early")
			break
		}
		res, err := verifier.Verify(i+1, diag, wanted, baseConfig)
		if err != nil {
			logger.Warn("Diagnosis verification error", "index", i+1, "error", err)
			continue
		}
		row := baseRow
		row.HasDiagnosis = true
		row.DiagnosisIndex = res.Index
		row.DiagnosisSize = res.Size
		row.Resolved = res.Resolved
		row.Applied = res.Applied
		if err := log.Append(row); err != nil {
			logger.Warn("Failed to append result row", "error", err)
		}
	}

	return nil
}

