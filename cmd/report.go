package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timeclock/internal/reporter"
)

func newReportCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "report [day|week|month]",
		Short:     "Show time spent per project for a period",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"day", "week", "month"},
		RunE: func(cmd *cobra.Command, args []string) error {
			periodType := "day"
			if len(args) == 1 {
				periodType = args[0]
			}

			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			rep := reporter.New(app.cfg, repo)
			report, err := rep.GenerateReport(periodType)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := rep.FormatReportJSON(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), rep.FormatReportText(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON")
	return cmd
}
