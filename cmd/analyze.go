package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cliniform/bpvar-cli/internal/dataset"
	"github.com/cliniform/bpvar-cli/internal/report"
	"github.com/cliniform/bpvar-cli/internal/schema"
	"github.com/cliniform/bpvar-cli/internal/utils"
	"github.com/cliniform/bpvar-cli/internal/variability"
	"github.com/cliniform/bpvar-cli/pkg/logger"
)

var (
	anaMapping    string
	anaOutputPath string
	anaFormat     string
	anaWorkers    int
	anaDelimiter  string
	anaDecimal    string
	anaThousands  string
	anaSheetName  string
	anaSheetIndex int
	anaMaxRows    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Compute BP variability metrics per patient",
	Long: `Analyze loads a BP spreadsheet, resolves its column mapping (auto-detected,
or loaded from a YAML file via --mapping), normalizes it into canonical
readings, and computes per-patient variability metrics: mean/min/max, SD,
CV, ARV, day/night profile, weighted SD, dipping status, morning surge,
pulse pressure, and BP stage.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := loadOptions(anaDelimiter, anaDecimal, anaThousands, anaSheetName, anaSheetIndex, anaMaxRows)
		if err != nil {
			return err
		}

		t, err := dataset.Load(path, opt)
		if err != nil {
			return err
		}

		mappings, issues, err := resolveMapping(t, anaMapping)
		if err != nil {
			return err
		}

		readings, err := schema.Normalize(t, mappings)
		if err != nil {
			return err
		}
		if len(readings) == 0 {
			return fmt.Errorf("no readings in %s", path)
		}
		logger.Debug("readings normalized",
			zap.String("file", path),
			zap.Int("readings", len(readings)))

		c := effectiveConfig()
		eng := variability.NewEngine(variability.Windows{
			DayStart:   c.DayStart,
			DayEnd:     c.DayEnd,
			NightStart: c.NightStart,
			NightEnd:   c.NightEnd,
		})
		if anaWorkers > 0 {
			eng.Workers = anaWorkers
		} else if c.Workers > 0 {
			eng.Workers = c.Workers
		}

		res := eng.Compute(readings)
		rep := report.New(path, res, issues)

		out, err := renderReport(rep, anaFormat)
		if err != nil {
			return err
		}
		return emit(out, anaOutputPath)
	},
}

// resolveMapping loads a confirmed mapping file when given, otherwise runs
// auto-detection. Either way the mapping is re-validated against the table so
// data quality issues land in the report.
func resolveMapping(t *dataset.Table, mappingPath string) ([]schema.Mapping, []string, error) {
	if mappingPath != "" {
		mappings, err := schema.LoadMapping(mappingPath)
		if err != nil {
			return nil, nil, err
		}
		return mappings, schema.Validate(t, mappings), nil
	}
	det := schema.Detect(t)
	return det.Mappings, det.Issues, nil
}

func renderReport(rep *report.Report, format string) ([]byte, error) {
	if format == "" {
		format = effectiveConfig().OutputFormat
	}
	switch strings.ToLower(format) {
	case "", "markdown", "md":
		return []byte(rep.Markdown()), nil
	case "csv":
		return rep.CSV()
	case "json":
		return rep.JSON()
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use markdown|csv|json)", format)
	}
}

// emit writes rendered output to path, or stdout when path is empty.
func emit(out []byte, path string) error {
	if path == "" {
		fmt.Print(string(out))
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}
	if err := utils.SafeWriteFile(path, out); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote report to %s\n", path)
	return nil
}

func init() {
	analyzeCmd.Flags().StringVar(&anaMapping, "mapping", "", "column mapping YAML (default: auto-detect)")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "out", "o", "", "write report to file instead of stdout")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "", "output format: markdown|csv|json")
	analyzeCmd.Flags().IntVar(&anaWorkers, "workers", 0, "concurrent patient groups (default from config)")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ','|tab|';' (default: sniffed)")
	analyzeCmd.Flags().StringVar(&anaDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	analyzeCmd.Flags().StringVar(&anaThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "xlsx sheet name (default: first sheet)")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 0, "xlsx sheet index, 1-based")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "cap on data rows read")
	rootCmd.AddCommand(analyzeCmd)
}
