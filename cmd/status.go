package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timeclock/internal/daemon"
	"timeclock/pkg/utils"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and session status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			d := daemon.New(app.cfg.Daemon.PIDFile)
			running, pid, err := d.IsRunning()
			if err != nil {
				return err
			}
			if running {
				fmt.Fprintf(out, "Daemon:  running (pid %d)\n", pid)
			} else {
				fmt.Fprintln(out, "Daemon:  not running")
			}

			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			session, err := repo.GetOpenSession()
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(out, "Session: clocked out")
				return nil
			}

			elapsed := int64(time.Since(session.StartedAt).Seconds())
			fmt.Fprintf(out, "Session: clocked in since %s (%s elapsed)\n",
				session.StartedAt.Format("15:04:05"), utils.FormatClock(elapsed))

			if project, perr := repo.GetProjectByID(session.ProjectID); perr == nil {
				task, terr := repo.GetTaskByID(session.TaskID)
				if terr == nil {
					fmt.Fprintf(out, "Task:    %s/%s\n", project.Name, task.Name)
				}
			}

			if shot, serr := repo.GetLatestScreenshot(); serr == nil && shot != nil {
				fmt.Fprintf(out, "Last screenshot: %s (%s)\n",
					shot.Timestamp.Format("15:04:05"), shot.FilePath)
			}

			return nil
		},
	}
}
