package cmd

import (
	"github.com/bnema/activity-indicator/internal/application"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Manage language server pending work",
	}

	cmd.AddCommand(
		newProgressSetCmd(app),
		newProgressClearCmd(app),
	)

	return cmd
}

func newProgressSetCmd(app *app) *cobra.Command {
	var message string
	var percentage int

	cmd := &cobra.Command{
		Use:   "set PROVIDER TOKEN",
		Short: "Start or update a unit of pending work",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := application.SetProgressCommand{
				Provider: args[0],
				Token:    args[1],
			}
			if cmd.Flags().Changed("message") {
				command.Message = &message
			}
			if cmd.Flags().Changed("percentage") {
				command.Percentage = &percentage
			}

			return app.service.SetProgress(cmd.Context(), command)
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Progress message")
	cmd.Flags().IntVar(&percentage, "percentage", 0, "Completion percentage (0-100)")

	return cmd
}

func newProgressClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear PROVIDER [TOKEN]",
		Short: "Finish one unit of pending work, or all of a provider's work",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := application.ClearProgressCommand{Provider: args[0]}
			if len(args) == 2 {
				command.Token = args[1]
			}

			return app.service.ClearProgress(cmd.Context(), command)
		},
	}
}
