// Package resultlog implements the Result Log: an append-only, 16-column
// CSV file written one row at a time, open-append-close per row so a crash
// mid-run never corrupts earlier rows. Adapted from the teacher's
// pkg/reporting.Storage persistence discipline, traded from whole-file JSON
// marshaling to a single appended line per call.
package resultlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dorina-sfi/configfix-harness/internal/harnesserr"
)

// Row is one Result Log entry, in CSV column order (§6.1).
type Row struct {
	Arch             string
	ConfigFileName   string
	Probability      string
	SymCount         int
	TristatesPresent bool
	EnabledCount     int
	CandidateCount   int
	ConflictFilePath string
	ConflictSize     int
	ResolutionSecs   float64
	SolutionSize     int
	// Placeholder is always empty; column 12 in the schema carries no data.
	Placeholder string

	// DiagnosisIndex/DiagnosisSize/Resolved/Applied are per-diagnosis
	// columns. HasDiagnosis is false for the "no solution" sentinel row,
	// which writes "-" in all four.
	HasDiagnosis   bool
	DiagnosisIndex int
	DiagnosisSize  int
	Resolved       bool
	Applied        bool
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// columns renders the row into the 16 ordered string fields the CSV writer
// expects.
func (r Row) columns() []string {
	diagIdx, diagSize, resolved, applied := "-", "-", "-", "-"
	if r.HasDiagnosis {
		diagIdx = strconv.Itoa(r.DiagnosisIndex)
		diagSize = strconv.Itoa(r.DiagnosisSize)
		resolved = yesNo(r.Resolved)
		applied = yesNo(r.Applied)
	}
	return []string{
		r.Arch,
		r.ConfigFileName,
		r.Probability,
		strconv.Itoa(r.SymCount),
		yesNo(r.TristatesPresent),
		strconv.Itoa(r.EnabledCount),
		strconv.Itoa(r.CandidateCount),
		r.ConflictFilePath,
		strconv.Itoa(r.ConflictSize),
		strconv.FormatFloat(r.ResolutionSecs, 'f', 6, 64),
		strconv.Itoa(r.SolutionSize),
		r.Placeholder,
		diagIdx,
		diagSize,
		resolved,
		applied,
	}
}

// Log is the append-only Result CSV at a fixed path. No header is written.
type Log struct {
	path string
}

// New returns a Log writing to path; Append creates parent directories as
// needed.
func New(path string) *Log {
	return &Log{path: path}
}

// Append opens the file for append, writes one CSV row, and closes it
// immediately, surviving a crash between rows.
func (l *Log) Append(row Row) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("%w: create result log directory: %v", harnesserr.ErrIOError, err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open result log %s: %v", harnesserr.ErrIOError, l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row.columns()); err != nil {
		return fmt.Errorf("%w: write result log row: %v", harnesserr.ErrIOError, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush result log: %v", harnesserr.ErrIOError, err)
	}
	return nil
}
