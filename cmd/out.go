package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timeclock/internal/tracker"
	"timeclock/pkg/utils"
)

func newOutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "out",
		Short: "Clock out of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			svc := tracker.NewService(app.cfg, repo, nil, app.log)
			session, err := svc.ClockOut()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Clocked out after %s\n",
				utils.FormatClock(session.DurationSeconds))
			return nil
		},
	}
}
