package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timeclock/internal/daemon"
)

func newServeCmd(app *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon in the foreground",
		Long:  "Runs the tracking loop and HTTP API attached to the terminal. Equivalent to 'start --foreground'. Remote login requires TIMECLOCK_AUTH_SECRET, TIMECLOCK_AUTH_EMAIL and TIMECLOCK_AUTH_PASSWORD to be set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.ValidateAuth(); err != nil {
				app.log.Warnf("API login disabled: %v", err)
			}

			d := daemon.New(app.cfg.Daemon.PIDFile)
			running, pid, err := d.IsRunning()
			if err != nil {
				return err
			}
			if running {
				return fmt.Errorf("daemon is already running (pid %d)", pid)
			}

			return runDaemon(app, d, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override the API port")
	return cmd
}
