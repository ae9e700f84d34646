package cmd

import (
	"fmt"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/spf13/cobra"
)

type clickOutput struct {
	Clicked domain.Content       `json:"clicked"`
	Content domain.Content       `json:"content"`
	Reports []domain.ErrorReport `json:"reports"`
}

func newClickCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "click",
		Short: "Run the action of the current status line",
		Long:  "click resolves the current status line and runs its action: show errors drains failed providers into the review sink, dismiss clears an auto-update error, restart runs the configured restart command.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.service.Click(cmd.Context())
			if err != nil && result.Clicked.IsEmpty() && result.Content.IsEmpty() {
				return err
			}

			if asJSON {
				reports := result.Reports
				if reports == nil {
					reports = []domain.ErrorReport{}
				}
				if encErr := writeJSON(cmd, clickOutput{Clicked: result.Clicked, Content: result.Content, Reports: reports}); encErr != nil {
					return encErr
				}
				return err
			}

			if !result.Clicked.Clickable() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to click: the status line has no action.")
			}
			if writeErr := writeContent(cmd, app, result.Content); writeErr != nil {
				return writeErr
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
