package events

import (
	"time"

	"github.com/bnema/activity-indicator/internal/domain"
)

// EventType identifies which status source changed.
type EventType string

const (
	InstallStatusChanged EventType = "install_status_changed"
	ProjectChanged       EventType = "project_changed"
	AutoUpdateChanged    EventType = "auto_update_changed"
	TasksChanged         EventType = "tasks_changed"
)

// Event is the payload published through the bus. Status is set only for
// InstallStatusChanged.
type Event struct {
	Type      EventType
	Status    *domain.StatusEvent
	Timestamp time.Time
}
