package ports

import (
	"context"

	"github.com/bnema/activity-indicator/internal/domain"
)

// Observable fires fn after every change. The returned cancel func stops
// further callbacks.
type Observable interface {
	Observe(fn func()) (cancel func())
}

type StatusStream interface {
	// Subscribe returns a channel of provider status events that is closed
	// once ctx is done.
	Subscribe(ctx context.Context) <-chan domain.StatusEvent
}

type Project interface {
	Observable
	// LanguageServerStatuses returns providers in registration order.
	LanguageServerStatuses() []domain.LanguageServerStatus
}

type AutoUpdater interface {
	Observable
	Status() domain.AutoUpdateState
	DismissError()
}

type TaskRegistry interface {
	Observable
	// ActiveTasks returns task descriptions, most recently activated last.
	ActiveTasks() []string
}
