package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"timeclock/internal/models"
)

func newTaskCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project> <name>",
		Short: "Create a task under a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			project, err := repo.GetProjectByName(args[0])
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("unknown project %q", args[0])
				}
				return err
			}

			task := &models.Task{ProjectID: project.ID, Name: args[1]}
			if err := repo.CreateTask(task); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s/%s (id %d)\n", project.Name, task.Name, task.ID)
			return nil
		},
	}
}

func newTaskListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [project]",
		Short: "List tasks, optionally for one project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			var projectID uint
			if len(args) == 1 {
				project, err := repo.GetProjectByName(args[0])
				if err != nil {
					if err == gorm.ErrRecordNotFound {
						return fmt.Errorf("unknown project %q", args[0])
					}
					return err
				}
				projectID = project.ID
			}

			tasks, err := repo.ListTasks(projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}

			for _, task := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", task.ID, task.Name)
			}
			return nil
		},
	}
}
