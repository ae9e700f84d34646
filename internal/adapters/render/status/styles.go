package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	message  lipgloss.Style
	download lipgloss.Style
	warning  lipgloss.Style
	action   lipgloss.Style
	empty    lipgloss.Style
	err      lipgloss.Style
	hint     lipgloss.Style
	spinner  lipgloss.Style
}

func newStyles() styles {
	return styles{
		message:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		download: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		action:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:    lipgloss.NewStyle().Faint(true),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
}

// plainStyles renders every element as bare text.
func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{
		message:  plain,
		download: plain,
		warning:  plain,
		action:   plain,
		empty:    plain,
		err:      plain,
		hint:     plain,
		spinner:  plain,
	}
}
