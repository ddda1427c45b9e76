package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/cliniform/bpvar-cli/internal/config"
	"github.com/cliniform/bpvar-cli/pkg/logger"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile       string
	debug         bool
	flagLogFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "bpvar",
	Short: "bpvar: blood pressure variability analysis from spreadsheet exports",
	Long: `bpvar ingests blood pressure logs exported as Excel or CSV files,
detects which columns carry which clinical roles, and computes per-patient
variability metrics: reading statistics, ARV, circadian day/night profile,
nocturnal dipping, morning surge, and visit-to-visit variability.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bpvar/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console or json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	format := cfg.LogFormat
	if flagLogFormat != "" {
		format = flagLogFormat
	}
	if err := logger.Init(level, format); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to init logger: %v\n", err)
		return
	}
	logger.Debug("configuration loaded",
		zap.String("config_file", cfgFile),
		zap.Int("day_start", cfg.DayStart),
		zap.Int("day_end", cfg.DayEnd),
		zap.Int("workers", cfg.Workers))
}

// effectiveConfig returns the loaded config, falling back to defaults when
// config loading failed or was skipped.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		DayStart:     8,
		DayEnd:       22,
		NightStart:   0,
		NightEnd:     6,
		MaxRows:      100000,
		SampleRows:   10,
		Workers:      4,
		OutputFormat: "markdown",
		LogLevel:     "info",
		LogFormat:    "console",
	}
}
