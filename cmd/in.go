package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"timeclock/internal/database"
	"timeclock/internal/models"
	"timeclock/internal/tracker"
)

func newInCmd(app *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "in <project> <task>",
		Short: "Clock in to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			project, task, err := resolveTarget(repo, args[0], args[1])
			if err != nil {
				return err
			}

			svc := tracker.NewService(app.cfg, repo, nil, app.log)
			session, err := svc.ClockIn(project.ID, task.ID, note)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Clocked in to %s/%s at %s\n",
				project.Name, task.Name, session.StartedAt.Format("15:04:05"))
			if !svc.HasCaptureBackend() {
				fmt.Fprintln(cmd.OutOrStdout(), "Note: no screenshot backend detected; run 'timeclock start' on a graphical session for periodic captures.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-form note stored with the session")
	return cmd
}

func resolveTarget(repo *database.Repository, projectName, taskName string) (*models.Project, *models.Task, error) {
	project, err := repo.GetProjectByName(projectName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("unknown project %q (create it with 'timeclock project add %s')", projectName, projectName)
		}
		return nil, nil, err
	}

	task, err := repo.GetTaskByName(project.ID, taskName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("unknown task %q in project %q (create it with 'timeclock task add %s %s')",
				taskName, projectName, projectName, taskName)
		}
		return nil, nil, err
	}

	return project, task, nil
}
