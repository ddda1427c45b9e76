package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cliniform/bpvar-cli/internal/dataset"
	"github.com/cliniform/bpvar-cli/internal/report"
	"github.com/cliniform/bpvar-cli/internal/schema"
	"github.com/cliniform/bpvar-cli/pkg/logger"
)

var (
	detSaveMapping string
	detSampleRows  int
	detDelimiter   string
	detDecimal     string
	detThousands   string
	detSheetName   string
	detSheetIndex  int
	detMaxRows     int
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect column roles in a BP spreadsheet and preview the mapping",
	Long: `Detect inspects the header names and sampled cell contents of an Excel or
CSV export, proposes a column-to-role mapping (patient id, date, time,
systolic, diastolic, heart rate), and reports data quality issues. Use
--save-mapping to write the proposal to a YAML file you can review, edit,
and pass to 'bpvar analyze --mapping'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := loadOptions(detDelimiter, detDecimal, detThousands, detSheetName, detSheetIndex, detMaxRows)
		if err != nil {
			return err
		}

		t, err := dataset.Load(path, opt)
		if err != nil {
			return err
		}
		logger.Debug("table loaded",
			zap.String("file", path),
			zap.Int("rows", len(t.Rows)),
			zap.Int("columns", len(t.Columns)))

		det := schema.Detect(t)

		sample := detSampleRows
		if sample == 0 {
			sample = effectiveConfig().SampleRows
		}
		fmt.Print(report.DetectionMarkdown(t, det, sample))

		if detSaveMapping != "" {
			if err := schema.SaveMapping(detSaveMapping, det.Mappings); err != nil {
				return err
			}
			fmt.Printf("\n✓ Mapping saved to %s\n", detSaveMapping)
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVar(&detSaveMapping, "save-mapping", "", "write the detected mapping to a YAML file")
	detectCmd.Flags().IntVar(&detSampleRows, "sample-rows", 0, "number of sample rows to preview")
	detectCmd.Flags().StringVar(&detDelimiter, "delimiter", "", "CSV delimiter: ','|tab|';' (default: sniffed)")
	detectCmd.Flags().StringVar(&detDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	detectCmd.Flags().StringVar(&detThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
	detectCmd.Flags().StringVar(&detSheetName, "sheet-name", "", "xlsx sheet name (default: first sheet)")
	detectCmd.Flags().IntVar(&detSheetIndex, "sheet-index", 0, "xlsx sheet index, 1-based")
	detectCmd.Flags().IntVar(&detMaxRows, "max-rows", 0, "cap on data rows read")
	rootCmd.AddCommand(detectCmd)
}
