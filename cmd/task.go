package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newTaskCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage running tasks",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "push DESCRIPTION",
			Short: "Mark a task as running",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.service.PushTask(cmd.Context(), strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "pop [DESCRIPTION]",
			Short: "Finish the most recent task, or the most recent one matching DESCRIPTION",
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.service.PopTask(cmd.Context(), strings.Join(args, " "))
			},
		},
	)

	return cmd
}
