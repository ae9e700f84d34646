package status

import (
	"strings"

	"github.com/bnema/activity-indicator/internal/domain"
)

const (
	downloadGlyph = "↓"
	warningGlyph  = "⚠"
	idleText      = "no activity"
)

type RenderOptions struct {
	// Plain drops all styling.
	Plain bool
	// ShowAction appends a hint describing what a click would do.
	ShowAction bool
}

func (o RenderOptions) styles() styles {
	if o.Plain {
		return plainStyles()
	}
	return newStyles()
}

// ActionHint describes what clicking content with the given action does.
func ActionHint(action domain.Action) string {
	switch action {
	case domain.ActionShowErrors:
		return "click to show errors"
	case domain.ActionDismissUpdateError:
		return "click to dismiss"
	case domain.ActionRestartToUpdate:
		return "click to restart"
	default:
		return ""
	}
}

// renderLine renders content as a single status line. glyph overrides the
// icon glyph when non-empty. Empty content renders as an empty string.
func renderLine(content domain.Content, glyph string, opts RenderOptions, s styles) string {
	if content.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 3)
	switch content.Icon {
	case domain.IconDownload:
		if glyph == "" {
			glyph = s.download.Render(downloadGlyph)
		}
		parts = append(parts, glyph)
	case domain.IconWarning:
		parts = append(parts, s.warning.Render(warningGlyph))
	}

	parts = append(parts, s.message.Render(content.Message))

	if opts.ShowAction && content.Clickable() {
		parts = append(parts, s.action.Render("("+ActionHint(content.Action)+")"))
	}

	return strings.Join(parts, " ")
}
