package domain

import "fmt"

type Icon string

const (
	IconNone     Icon = ""
	IconDownload Icon = "download"
	IconWarning  Icon = "warning"
)

type Action string

const (
	ActionNone               Action = ""
	ActionShowErrors         Action = "show_errors"
	ActionDismissUpdateError Action = "dismiss_update_error"
	ActionRestartToUpdate    Action = "restart_to_update"
)

// Content is one resolved status line. It is recomputed on every render.
type Content struct {
	Icon    Icon   `json:"icon,omitempty"`
	Message string `json:"message"`
	Action  Action `json:"action,omitempty"`
}

func (c Content) IsEmpty() bool {
	return c == Content{}
}

func (c Content) Clickable() bool {
	return c.Action != ActionNone
}

// ErrorReport is emitted once per failed provider drained by the show-errors action.
type ErrorReport struct {
	ProviderName string `json:"provider"`
	Error        string `json:"error"`
}

func (r ErrorReport) Text() string {
	return fmt.Sprintf("Language server error: %s\n\n%s", r.ProviderName, r.Error)
}
