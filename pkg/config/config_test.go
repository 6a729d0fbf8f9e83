package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Arch != "x86" {
		t.Errorf("expected default arch x86, got %q", cfg.Run.Arch)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Run.Arch = "arm64"
	cfg.Run.ConflictSize = 3
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Run.Arch != "arm64" || loaded.Run.ConflictSize != 3 {
		t.Errorf("round trip mismatch: %+v", loaded.Run)
	}
}

func TestEnvOverridesTakePriorityOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Run.Arch = "arm64"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	os.Setenv("arch", "riscv")
	defer os.Unsetenv("arch")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Run.Arch != "riscv" {
		t.Errorf("expected env override to win, got %q", loaded.Run.Arch)
	}
}

func TestValidateRejectsMissingPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths.KconfigPath = ""
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected error for empty kconfig_path")
	}
}
