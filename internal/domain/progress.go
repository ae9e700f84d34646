package domain

import "time"

type Progress struct {
	Message      *string
	Percentage   *int
	LastUpdateAt time.Time
}

// LanguageServerStatus is a provider's live map of progress token to progress.
type LanguageServerStatus struct {
	Name        string
	PendingWork map[string]Progress
}

type PendingWorkItem struct {
	ProviderName string
	Token        string
	Progress     Progress
}

// Label returns the progress message, or the token when no message was reported.
func (w PendingWorkItem) Label() string {
	if w.Progress.Message != nil {
		return *w.Progress.Message
	}
	return w.Token
}
