package resultlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendWritesSentinelRowForEmptySolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	log := New(path)

	row := Row{
		Arch: "x86", ConfigFileName: ".config.0.5", Probability: "0.5",
		SymCount: 10, TristatesPresent: true, EnabledCount: 4,
		CandidateCount: 2, ConflictFilePath: "conflict.000/conflict.txt",
		ConflictSize: 1, ResolutionSecs: 0.001234, SolutionSize: 0,
	}
	if err := log.Append(row); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	fields := strings.Split(line, ",")
	if len(fields) != 16 {
		t.Fatalf("expected 16 columns, got %d: %q", len(fields), line)
	}
	for _, col := range fields[12:16] {
		if col != "-" {
			t.Errorf("expected sentinel '-' in diagnosis columns, got %q in %q", col, line)
		}
	}
}

func TestAppendIsCumulativeAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	log := New(path)

	row := Row{Arch: "arm", HasDiagnosis: true, DiagnosisIndex: 1, DiagnosisSize: 2, Resolved: true, Applied: true}
	if err := log.Append(row); err != nil {
		t.Fatalf("Append 1: %v", err)
	}
	if err := log.Append(row); err != nil {
		t.Fatalf("Append 2: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows after two Append calls, got %d", len(lines))
	}
}
