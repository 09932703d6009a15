package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timeclock/internal/models"
)

func newProjectCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			project := &models.Project{Name: args[0]}
			if err := repo.CreateProject(project); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (id %d)\n", project.Name, project.ID)
			return nil
		},
	}
}

func newProjectListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects and their tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, cleanup, err := app.openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			projects, err := repo.ListProjects()
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet. Create one with 'timeclock project add <name>'.")
				return nil
			}

			for _, project := range projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", project.Name)
				for _, task := range project.Tasks {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", task.Name)
				}
			}
			return nil
		},
	}
}
