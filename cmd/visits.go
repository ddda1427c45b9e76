package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cliniform/bpvar-cli/internal/dataset"
	"github.com/cliniform/bpvar-cli/internal/report"
	"github.com/cliniform/bpvar-cli/internal/schema"
	"github.com/cliniform/bpvar-cli/internal/variability"
	"github.com/cliniform/bpvar-cli/pkg/logger"
)

var (
	visMapping    string
	visOutputPath string
	visFormat     string
	visDelimiter  string
	visDecimal    string
	visThousands  string
	visSheetName  string
	visSheetIndex int
	visMaxRows    int
)

var visitsCmd = &cobra.Command{
	Use:   "visits <file>",
	Short: "Compute visit-to-visit BP variability per patient",
	Long: `Visits treats each dated reading as one clinic visit and computes
visit-to-visit variability per patient (mean, SD, CV, ARV across visits,
plus SBP range). Patients with fewer than two dated visits are excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := loadOptions(visDelimiter, visDecimal, visThousands, visSheetName, visSheetIndex, visMaxRows)
		if err != nil {
			return err
		}

		t, err := dataset.Load(path, opt)
		if err != nil {
			return err
		}
		mappings, _, err := resolveMapping(t, visMapping)
		if err != nil {
			return err
		}
		readings, err := schema.Normalize(t, mappings)
		if err != nil {
			return err
		}

		visits := variability.VisitsFromReadings(readings)
		if len(visits) == 0 {
			return fmt.Errorf("no dated readings with complete BP pairs in %s", path)
		}
		logger.Debug("visits aggregated",
			zap.String("file", path),
			zap.Int("visits", len(visits)))

		records := variability.ComputeLongitudinal(visits)
		rep := report.NewLongitudinal(path, records)

		format := visFormat
		if format == "" {
			format = effectiveConfig().OutputFormat
		}
		var out []byte
		switch strings.ToLower(format) {
		case "", "markdown", "md":
			out = []byte(rep.Markdown())
		case "csv":
			out, err = rep.CSV()
		case "json":
			out, err = rep.JSON()
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|csv|json)", format)
		}
		if err != nil {
			return err
		}
		return emit(out, visOutputPath)
	},
}

func init() {
	visitsCmd.Flags().StringVar(&visMapping, "mapping", "", "column mapping YAML (default: auto-detect)")
	visitsCmd.Flags().StringVarP(&visOutputPath, "out", "o", "", "write report to file instead of stdout")
	visitsCmd.Flags().StringVar(&visFormat, "format", "", "output format: markdown|csv|json")
	visitsCmd.Flags().StringVar(&visDelimiter, "delimiter", "", "CSV delimiter: ','|tab|';' (default: sniffed)")
	visitsCmd.Flags().StringVar(&visDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	visitsCmd.Flags().StringVar(&visThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
	visitsCmd.Flags().StringVar(&visSheetName, "sheet-name", "", "xlsx sheet name (default: first sheet)")
	visitsCmd.Flags().IntVar(&visSheetIndex, "sheet-index", 0, "xlsx sheet index, 1-based")
	visitsCmd.Flags().IntVar(&visMaxRows, "max-rows", 0, "cap on data rows read")
	rootCmd.AddCommand(visitsCmd)
}
