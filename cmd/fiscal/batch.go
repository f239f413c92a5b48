package main

import (
	"fmt"

	"github.com/rpgo/withholding-calculator/internal/calculation"
	"github.com/rpgo/withholding-calculator/internal/config"
	"github.com/rpgo/withholding-calculator/internal/output"
	"github.com/rpgo/withholding-calculator/internal/provenance"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) batchCmd() *cobra.Command {
	var format, outputDir string
	var record bool
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Run every calculation in a YAML or JSON batch file",
		Long: `Run every calculation listed in a batch file and render one report.

Example file:
  calculations:
    - scenario: honorarios
      case_number: "00012345620205040001"
      gross: 10000.00
    - scenario: fepa
      start: "01/2020"
      end: "03/2020"
      gross: 9000.00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, closeFn, err := a.service(ctx, record)
			if err != nil {
				return err
			}
			defer closeFn()

			items, receipts := svc.CalculateBatch(ctx, batch.Calculations)
			failed := lo.CountBy(items, func(item calculation.BatchItem) bool { return item.Err != nil })
			unsaved := lo.CountBy(receipts, func(r provenance.Receipt) bool { return r.RecordErr != nil })
			a.logger.Info("batch evaluated", zap.String("file", args[0]), zap.Int("calculations", len(items)), zap.Int("failed", failed))
			if unsaved > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d calculations not saved\n", unsaved)
			}

			if err := a.emit(cmd, output.BuildReport(items, a.now()), format, outputDir); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d calculations failed", failed, len(items))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	cmd.Flags().BoolVar(&record, "record", false, "Save successful calculations to the history database")
	return cmd
}
