package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/activity-indicator/internal/adapters/render/status"
	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// writeContent prints content as one line. Empty content prints nothing.
func writeContent(cmd *cobra.Command, app *app, content domain.Content) error {
	rendered, err := app.renderer(content, statusadapter.RenderOptions{ShowAction: true})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}
	if rendered == "" {
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
