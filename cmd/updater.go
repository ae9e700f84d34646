package cmd

import (
	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/spf13/cobra"
)

func newUpdaterCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updater",
		Short: "Manage the auto-updater state",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set STATE",
			Short: "Set the updater state (idle, checking, downloading, installing, updated, errored)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				state, err := domain.ParseAutoUpdateState(args[0])
				if err != nil {
					return err
				}
				return app.service.SetUpdaterState(cmd.Context(), state)
			},
		},
		&cobra.Command{
			Use:   "detach",
			Short: "Run without an auto-updater",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.service.DetachUpdater(cmd.Context())
			},
		},
	)

	return cmd
}
