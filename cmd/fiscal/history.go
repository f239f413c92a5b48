package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/withholding-calculator/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history [case-number-fragment]",
		Short: "List saved calculations whose case number contains the fragment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment := ""
			if len(args) == 1 {
				fragment = args[0]
			}

			ctx := cmd.Context()
			svc, closeFn, err := a.service(ctx, true)
			if err != nil {
				return err
			}
			defer closeFn()

			records, err := svc.History(ctx, fragment)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No saved calculations found.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tCASE\tSCENARIO\tACTOR\tID")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"),
					output.FormatCaseNumber(r.CaseNumber),
					r.Scenario,
					r.Actor,
					r.ID,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the records, including stored results, as JSON")
	return cmd
}
