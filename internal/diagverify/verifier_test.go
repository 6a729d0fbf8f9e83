package diagverify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dorina-sfi/configfix-harness/internal/model"
	"github.com/dorina-sfi/configfix-harness/internal/snapshot"
	"github.com/dorina-sfi/configfix-harness/pkg/kconfig"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

func TestVerifyResolvesSimpleDiagnosis(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "Kmodel")
	os.WriteFile(modelPath, []byte(`
symbol X bool "X"
symbol A bool "A" depends="X"
`), 0o644)
	cfgPath := filepath.Join(dir, ".config")
	os.WriteFile(cfgPath, []byte("CONFIG_X=n\nCONFIG_A=y\n"), 0o644)

	a := model.New(1)
	if err := a.ParseModel(modelPath); err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	if err := a.LoadConfig(cfgPath); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	logger := reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelError, Format: reporting.LogFormatJSON})
	store := snapshot.New(a.Engine(), logger)
	base := store.Backup()

	wanted := []kconfig.Fix{{Symbol: "A", Kind: kconfig.FixBoolean, TargetTri: kconfig.No}}
	sol := a.Resolve(wanted)
	if len(sol) == 0 {
		t.Fatalf("expected a diagnosis resolving A=n")
	}

	v := New(a, store, logger, dir, cfgPath)
	res, err := v.Verify(1, sol[0], wanted, base)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Resolved {
		t.Errorf("expected diagnosis to resolve, got %+v", res)
	}
	if res.ErrReset {
		t.Errorf("expected clean reset, got ErrReset=true")
	}

	if store.Compare(base) != 0 {
		t.Errorf("expected configuration restored to BaseConfig after verify")
	}
}
