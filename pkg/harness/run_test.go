package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

const testModel = `
menu "m"
  symbol X bool "X"
  symbol A bool "A" depends="X"
  symbol B tristate "B" depends="X"
endmenu
`

func TestRunEndToEndProducesResultRow(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "Kmodel")
	if err := os.WriteFile(modelPath, []byte(testModel), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	cfgPath := filepath.Join(dir, ".config")
	if err := os.WriteFile(cfgPath, []byte("CONFIG_X=n\nCONFIG_A=y\nCONFIG_B=m\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	sampleDir := filepath.Join(dir, "sample")
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		t.Fatalf("mkdir sample: %v", err)
	}
	csvPath := filepath.Join(dir, "results.csv")

	rc := RunContext{
		ModelPath:    modelPath,
		ConfigPath:   cfgPath,
		Arch:         "x86",
		Probability:  "0.5",
		ConflictSize: 1,
		SampleDir:    sampleDir,
		CSVPath:      csvPath,
		Seed:         42,
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelError, Format: reporting.LogFormatJSON})

	if err := Run(context.Background(), rc, logger); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("expected results.csv to be written: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected at least one CSV row")
	}
}

func TestRunNoCandidatesSkipsCSVRow(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "Kmodel")
	os.WriteFile(modelPath, []byte(`symbol X bool "X"`), 0o644)
	cfgPath := filepath.Join(dir, ".config")
	os.WriteFile(cfgPath, []byte("CONFIG_X=n\n"), 0o644)
	sampleDir := filepath.Join(dir, "sample")
	os.MkdirAll(sampleDir, 0o755)
	csvPath := filepath.Join(dir, "results.csv")

	rc := RunContext{
		ModelPath: modelPath, ConfigPath: cfgPath, Arch: "x86", Probability: "0.1",
		ConflictSize: 1, SampleDir: sampleDir, CSVPath: csvPath, Seed: 1,
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelError, Format: reporting.LogFormatJSON})
	if err := Run(context.Background(), rc, logger); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(csvPath); err == nil {
		t.Errorf("expected no results.csv when no candidates exist")
	}
}
