// Package config loads the harness's YAML configuration: the path and
// architecture settings a single conflict-generation run needs, with
// environment variables taking precedence over the file exactly as
// described in the environment-inputs contract.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for one configfix-run invocation.
type Config struct {
	Paths PathsConfig `yaml:"paths"`
	Run   RunConfig   `yaml:"run"`
}

// PathsConfig contains the filesystem locations recognised from §6.3.
type PathsConfig struct {
	WorkingPath        string `yaml:"working_path"`
	RootPath           string `yaml:"root_path"`
	KconfigPath        string `yaml:"kconfig_path"`
	TestingPath        string `yaml:"testing_path"`
	ConfigSampleDir    string `yaml:"config_sample_dir"`
	ConfigSampleFolder string `yaml:"config_sample_folder"`
}

// RunConfig contains the per-run architecture and conflict settings.
type RunConfig struct {
	Arch         string  `yaml:"arch"`
	Srcarch      string  `yaml:"srcarch"`
	ConfigProb   string  `yaml:"config_prob"`
	ConflictSize int   `yaml:"conflict_size"`
	Seed         int64 `yaml:"seed"`
}

// DefaultConfig returns the configuration used when no config.yaml exists yet.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			WorkingPath:        ".",
			RootPath:           ".",
			KconfigPath:        "./Kmodel",
			TestingPath:        "./testing",
			ConfigSampleDir:    "./testing/samples",
			ConfigSampleFolder: "config.0.50",
		},
		Run: RunConfig{
			Arch:         "x86",
			Srcarch:      "x86",
			ConfigProb:   "0.50",
			ConflictSize: 1,
			Seed:         1,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults if
// the file is absent, then applies environment-variable overrides (§6.3) —
// unset keys fall back to what the file (or defaults) already supplied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies the §6.3 environment keys over cfg, each
// taking priority over the file value when set — the same precedence the
// teacher gives PROMETHEUS_URL.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("working_path"); v != "" {
		cfg.Paths.WorkingPath = v
	}
	if v := os.Getenv("root_path"); v != "" {
		cfg.Paths.RootPath = v
	}
	if v := os.Getenv("testing_path"); v != "" {
		cfg.Paths.TestingPath = v
	}
	if v := os.Getenv("config_sample_dir"); v != "" {
		cfg.Paths.ConfigSampleDir = v
	}
	if v := os.Getenv("config_sample_folder"); v != "" {
		cfg.Paths.ConfigSampleFolder = v
	}
	if v := os.Getenv("config_prob"); v != "" {
		cfg.Run.ConfigProb = v
	}
	if v := os.Getenv("conflict_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.ConflictSize = n
		}
	}
	if v := os.Getenv("arch"); v != "" {
		cfg.Run.Arch = v
	}
	if v := os.Getenv("srcarch"); v != "" {
		cfg.Run.Srcarch = v
	}
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the fields a run cannot proceed without.
func (c *Config) Validate() error {
	if c.Paths.KconfigPath == "" {
		return fmt.Errorf("paths.kconfig_path is required")
	}
	if c.Paths.TestingPath == "" {
		return fmt.Errorf("paths.testing_path is required")
	}
	if c.Run.ConflictSize < 0 {
		return fmt.Errorf("run.conflict_size must be non-negative")
	}
	return nil
}
