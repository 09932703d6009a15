package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timeclock",
		Short:         "Clock in and out of work sessions with periodic screenshots",
		Long:          "timeclock records work sessions against projects and tasks, takes periodic screenshots while a session is open, captures host network details at clock-in, and serves reports over a local dashboard and HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newInCmd(app),
		newOutCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newStartCmd(app),
		newServeCmd(app),
		newStopCmd(app),
		newClearCmd(app),
	)

	return rootCmd
}
