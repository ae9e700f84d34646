package cmd

import (
	"github.com/spf13/cobra"
)

func newResolveCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the current status line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := app.service.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, content)
			}
			return writeContent(cmd, app, content)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
