package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dorina-sfi/configfix-harness/pkg/config"
	"github.com/dorina-sfi/configfix-harness/pkg/harness"
	"github.com/dorina-sfi/configfix-harness/pkg/reporting"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Generate, resolve, and verify one fabricated configuration conflict",
	Long: `Run loads a Kconfig-like model and a .config sample, fabricates a conflict
of the requested size against currently-blocked candidate symbols, invokes
the resolver, and verifies each returned diagnosis, appending one CSV row
per diagnosis to the result log.

This runs exactly one test for one architecture/probability/conflict-size
combination. Looping over architectures or probability levels and
regenerating config samples is the outer driver's job, not this command's.`,
	RunE: runConfigfix,
}

func init() {
	runCmd.Flags().String("kconfig", "", "path to the Kconfig-like model file (overrides config)")
	runCmd.Flags().String("dotconfig", "", "path to the .config sample to load (overrides config)")
	runCmd.Flags().String("arch", "", "architecture tag recorded in the CSV row (overrides config)")
	runCmd.Flags().String("srcarch", "", "source architecture tag (overrides config)")
	runCmd.Flags().String("prob", "", "probability level tag, e.g. 0.50 (overrides config)")
	runCmd.Flags().Int("conflict-size", -1, "number of distinct conflict candidates to fabricate (overrides config; -1 = use config)")
	runCmd.Flags().Int64("seed", 0, "random seed for reproducibility (0 = use config)")
	runCmd.Flags().String("sample-dir", "", "directory to write conflict.NNN/diagNN files into (overrides config)")
	runCmd.Flags().String("csv", "", "path to the result CSV (default <testing_path>/results.csv)")
}

func runConfigfix(cmd *cobra.Command, _ []string) error {
	appCfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("kconfig"); v != "" {
		appCfg.Paths.KconfigPath = v
	}
	if v, _ := cmd.Flags().GetString("arch"); v != "" {
		appCfg.Run.Arch = v
	}
	if v, _ := cmd.Flags().GetString("srcarch"); v != "" {
		appCfg.Run.Srcarch = v
	}
	if v, _ := cmd.Flags().GetString("prob"); v != "" {
		appCfg.Run.ConfigProb = v
	}
	if v, _ := cmd.Flags().GetInt("conflict-size"); v >= 0 {
		appCfg.Run.ConflictSize = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		appCfg.Run.Seed = v
	}

	dotConfig, _ := cmd.Flags().GetString("dotconfig")
	if dotConfig == "" {
		dotConfig = filepath.Join(appCfg.Paths.ConfigSampleDir, appCfg.Paths.ConfigSampleFolder, ".config")
	}

	sampleDir, _ := cmd.Flags().GetString("sample-dir")
	if sampleDir == "" {
		sampleDir = filepath.Join(appCfg.Paths.ConfigSampleDir, appCfg.Paths.ConfigSampleFolder)
	}

	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath == "" {
		csvPath = filepath.Join(appCfg.Paths.TestingPath, "results.csv")
	}

	if err := appCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})
	logger.Info("configfix-run starting", "version", version)

	rc := harness.RunContext{
		ModelPath:    appCfg.Paths.KconfigPath,
		ConfigPath:   dotConfig,
		Arch:         appCfg.Run.Arch,
		Probability:  appCfg.Run.ConfigProb,
		ConflictSize: appCfg.Run.ConflictSize,
		SampleDir:    sampleDir,
		CSVPath:      csvPath,
		Seed:         appCfg.Run.Seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := harness.Run(ctx, rc, logger); err != nil {
		return fmt.Errorf("configfix-run failed: %w", err)
	}

	logger.Info("configfix-run completed successfully")
	return nil
}

// loadConfig loads configuration from file, auto-generating a default one
// if it does not yet exist — the same first-run behavior as the teacher's
// own loadConfig.
func loadConfig() (*config.Config, error) {
	configPath := cfgFile
	if configPath == "" {
		configPath = "config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("config file not found, creating default configuration at: %s\n", configPath)

		cfg := config.DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	return cfg, nil
}
