package conflict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dorina-sfi/configfix-harness/internal/model"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

func newTestLogger() *reporting.Logger {
	return reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelError, Format: reporting.LogFormatJSON})
}

func TestGenerateZeroConflictSizeReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "Kmodel")
	os.WriteFile(modelPath, []byte(`symbol A bool "A"`), 0o644)
	a := model.New(1)
	if err := a.ParseModel(modelPath); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	g := New(a, newTestLogger())
	c, err := g.Generate(0, 5)
	if err != nil {
		t.Fatalf("Generate(0, 5): %v", err)
	}
	if len(c) != 0 {
		t.Errorf("expected empty conflict, got %+v", c)
	}
}

func TestGenerateNoCandidatesErrors(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "Kmodel")
	os.WriteFile(modelPath, []byte(`symbol A bool "A"`), 0o644)
	a := model.New(1)
	if err := a.ParseModel(modelPath); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	g := New(a, newTestLogger())
	if _, err := g.Generate(1, 0); err == nil {
		t.Fatalf("expected error when candidate_count is zero")
	}
}

func TestGenerateProducesDistinctEntries(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "Kmodel")
	model := `
menu "m"
  symbol X bool "X"
  symbol A bool "A" depends="X"
  symbol B bool "B" depends="X"
endmenu
`
	os.WriteFile(modelPath, []byte(model), 0o644)
	cfgPath := filepath.Join(dir, ".config")
	// X stays unset (n); A and B are forced to y in the config fixture even
	// though their dependency on X=n would not normally allow it. This
	// stale-config shape is what gives both symbols a blocked Yes value and
	// makes them conflict candidates.
	os.WriteFile(cfgPath, []byte("CONFIG_A=y\nCONFIG_B=y\n"), 0o644)

	a := newAdapterFor(t, modelPath, cfgPath)
	g := New(a, newTestLogger())
	c, err := g.Generate(2, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(c))
	}
	if c[0].SymbolName == c[1].SymbolName {
		t.Errorf("expected distinct symbols, got two entries for %s", c[0].SymbolName)
	}
}

func newAdapterFor(t *testing.T, modelPath, cfgPath string) *model.Adapter {
	t.Helper()
	a := model.New(7)
	if err := a.ParseModel(modelPath); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	if err := a.LoadConfig(cfgPath); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return a
}
