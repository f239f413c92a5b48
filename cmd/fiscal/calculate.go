package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/internal/output"
	"github.com/rpgo/withholding-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commonFlags are shared by the single-calculation commands.
type commonFlags struct {
	caseNumber string
	claimant   string
	respondent string
	format     string
	outputDir  string
	record     bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.caseNumber, "case", "", "Case number")
	cmd.Flags().StringVar(&f.claimant, "claimant", "", "Claimant name")
	cmd.Flags().StringVar(&f.respondent, "respondent", "", "Respondent name")
	cmd.Flags().StringVarP(&f.format, "format", "f", "console", fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	cmd.Flags().BoolVar(&f.record, "record", false, "Save the calculation to the history database")
}

func (f *commonFlags) caseInfo() domain.CaseInfo {
	return domain.CaseInfo{CaseNumber: f.caseNumber, Claimant: f.claimant, Respondent: f.respondent}
}

func (a *app) feesCmd() *cobra.Command {
	var common commonFlags
	var gross string
	cmd := &cobra.Command{
		Use:     "fees",
		Aliases: []string{string(domain.ScenarioFees)},
		Short:   "Withholding on a single-period professional fee payment",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := parseAmount("gross", gross)
			if err != nil {
				return err
			}
			return a.runSingle(cmd, &common, domain.CalculationRequest{
				Scenario: domain.ScenarioFees,
				CaseInfo: common.caseInfo(),
				Gross:    g,
			})
		},
	}
	cmd.Flags().StringVar(&gross, "gross", "", "Gross fee amount [REQUIRED]")
	_ = cmd.MarkFlagRequired("gross")
	common.register(cmd)
	return cmd
}

func (a *app) amortizedCmd() *cobra.Command {
	var common commonFlags
	var gross, base string
	var months int
	cmd := &cobra.Command{
		Use:     "rra",
		Aliases: []string{"amortized"},
		Short:   "Withholding on cumulative income spread over a number of months",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := parseAmount("gross", gross)
			if err != nil {
				return err
			}
			b := g
			if base != "" {
				if b, err = parseAmount("base", base); err != nil {
					return err
				}
			}
			return a.runSingle(cmd, &common, domain.CalculationRequest{
				Scenario: domain.ScenarioAmortized,
				CaseInfo: common.caseInfo(),
				Months:   months,
				Gross:    g,
				Base:     b,
			})
		},
	}
	cmd.Flags().StringVar(&gross, "gross", "", "Gross payout [REQUIRED]")
	cmd.Flags().StringVar(&base, "base", "", "Taxable base (defaults to gross)")
	cmd.Flags().IntVar(&months, "months", 0, "Number of months the income refers to [REQUIRED]")
	_ = cmd.MarkFlagRequired("gross")
	_ = cmd.MarkFlagRequired("months")
	common.register(cmd)
	return cmd
}

func (a *app) periodCmd() *cobra.Command {
	var common commonFlags
	var gross, start, end string
	cmd := &cobra.Command{
		Use:     "fepa",
		Aliases: []string{"period"},
		Short:   "Contribution and withholding on a payment spread over a competence period",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := parseAmount("gross", gross)
			if err != nil {
				return err
			}
			return a.runSingle(cmd, &common, domain.CalculationRequest{
				Scenario: domain.ScenarioPeriod,
				CaseInfo: common.caseInfo(),
				Start:    start,
				End:      end,
				Gross:    g,
			})
		},
	}
	cmd.Flags().StringVar(&gross, "gross", "", "Gross payout [REQUIRED]")
	cmd.Flags().StringVar(&start, "start", "", "First competence month, MM/YYYY [REQUIRED]")
	cmd.Flags().StringVar(&end, "end", "", "Last competence month, MM/YYYY [REQUIRED]")
	_ = cmd.MarkFlagRequired("gross")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	common.register(cmd)
	return cmd
}

func (a *app) flatRateCmd() *cobra.Command {
	var common commonFlags
	var gross, corrected, branch string
	var simplified bool
	cmd := &cobra.Command{
		Use:     "pj",
		Aliases: []string{"corporate"},
		Short:   "Flat-rate withholding for corporate payees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := parseAmount("gross", gross)
			if err != nil {
				return err
			}
			c, err := parseAmount("corrected", corrected)
			if err != nil {
				return err
			}
			return a.runSingle(cmd, &common, domain.CalculationRequest{
				Scenario:   domain.ScenarioFlatRate,
				CaseInfo:   common.caseInfo(),
				Gross:      g,
				Corrected:  c,
				Simplified: simplified,
				Branch:     domain.BranchCode(strings.TrimSpace(branch)),
			})
		},
	}
	cmd.Flags().StringVar(&gross, "gross", "", "Gross payout [REQUIRED]")
	cmd.Flags().StringVar(&corrected, "corrected", "", "Corrected amount the rate applies to [REQUIRED]")
	cmd.Flags().StringVar(&branch, "branch", "", "Activity branch: 1 general, 2 liberal profession, 3 labor assignment")
	cmd.Flags().BoolVar(&simplified, "simplified", false, "Payee is under the simplified regime (exempt)")
	_ = cmd.MarkFlagRequired("gross")
	_ = cmd.MarkFlagRequired("corrected")
	common.register(cmd)
	return cmd
}

// runSingle computes one request, optionally records it and renders the report.
func (a *app) runSingle(cmd *cobra.Command, common *commonFlags, req domain.CalculationRequest) error {
	ctx := cmd.Context()
	svc, closeFn, err := a.service(ctx, common.record)
	if err != nil {
		return err
	}
	defer closeFn()

	receipt, err := svc.Calculate(ctx, req)
	if err != nil {
		return err
	}
	if receipt.RecordErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: calculation not saved: %v\n", receipt.RecordErr)
	} else if receipt.RecordID != "" {
		a.logger.Info("calculation saved", zap.String("id", receipt.RecordID), zap.String("case", req.CaseNumber))
	}

	return a.emit(cmd, output.SingleReport(receipt.Outcome, a.now()), common.format, common.outputDir)
}

// emit renders the report to stdout, or to a file when dir is set.
func (a *app) emit(cmd *cobra.Command, report *domain.Report, format, dir string) error {
	if dir == "" {
		return output.Render(cmd.OutOrStdout(), report, format)
	}
	path, err := output.GenerateReport(report, format, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

func parseAmount(name, value string) (*decimal.Decimal, error) {
	d, err := money.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("--%s cannot be negative", name)
	}
	return &d, nil
}
