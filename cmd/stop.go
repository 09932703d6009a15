package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timeclock/internal/daemon"
)

func newStopCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the tracking daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := daemon.New(app.cfg.Daemon.PIDFile)
			if err := d.Stop(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Daemon stopped.")
			return nil
		},
	}
}
