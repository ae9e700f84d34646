package cmd

import (
	"fmt"

	"github.com/bnema/activity-indicator/internal/application"
	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/spf13/cobra"
)

func newProviderCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage language server install statuses",
	}

	cmd.AddCommand(
		newProviderSetCmd(app),
	)

	return cmd
}

func newProviderSetCmd(app *app) *cobra.Command {
	var errText string

	cmd := &cobra.Command{
		Use:   "set NAME STATUS",
		Short: "Record an install status (checking_for_update, downloading, downloaded, cached, failed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseInstallStatusKind(args[1])
			if err != nil {
				return err
			}

			status := domain.InstallStatus{Kind: kind}
			switch {
			case kind == domain.InstallFailed:
				if errText == "" {
					return fmt.Errorf("status %q requires --error", kind)
				}
				status = domain.Failed(errText)
			case errText != "":
				return fmt.Errorf("--error only applies to status %q", domain.InstallFailed)
			}

			return app.service.SetInstallStatus(cmd.Context(), application.SetInstallStatusCommand{
				Name:   args[0],
				Status: status,
			})
		},
	}

	cmd.Flags().StringVar(&errText, "error", "", "Error text for a failed status")

	return cmd
}
