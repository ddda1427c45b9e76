package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/cliniform/bpvar-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set bpvar configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		fmt.Printf("day_start: %d\n", c.DayStart)
		fmt.Printf("day_end: %d\n", c.DayEnd)
		fmt.Printf("night_start: %d\n", c.NightStart)
		fmt.Printf("night_end: %d\n", c.NightEnd)
		fmt.Printf("max_rows: %d\n", c.MaxRows)
		fmt.Printf("sample_rows: %d\n", c.SampleRows)
		fmt.Printf("workers: %d\n", c.Workers)
		fmt.Printf("output_format: %s\n", c.OutputFormat)
		if c.DecimalSeparator != "" {
			fmt.Printf("decimal_separator: %s\n", c.DecimalSeparator)
		}
		if c.ThousandsSeparator != "" {
			fmt.Printf("thousands_separator: %s\n", c.ThousandsSeparator)
		}
		fmt.Printf("log_level: %s\n", c.LogLevel)
		fmt.Printf("log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "day_start", "day_end", "night_start", "night_end", "max_rows", "sample_rows", "workers":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "day_start":
				cfg.DayStart = i
			case "day_end":
				cfg.DayEnd = i
			case "night_start":
				cfg.NightStart = i
			case "night_end":
				cfg.NightEnd = i
			case "max_rows":
				cfg.MaxRows = i
			case "sample_rows":
				cfg.SampleRows = i
			case "workers":
				cfg.Workers = i
			}
		case "output_format":
			switch val {
			case "markdown", "csv", "json":
				cfg.OutputFormat = val
			default:
				return fmt.Errorf("invalid output_format: %s (use markdown, csv, or json)", val)
			}
		case "decimal_separator":
			cfg.DecimalSeparator = val
		case "thousands_separator":
			cfg.ThousandsSeparator = val
		case "log_level":
			cfg.LogLevel = val
		case "log_format":
			switch val {
			case "console", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
