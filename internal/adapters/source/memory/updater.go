package memory

import (
	"sync"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/events"
	"github.com/bnema/activity-indicator/internal/ports"
)

type AutoUpdater struct {
	bus   *events.Bus
	mu    sync.RWMutex
	state domain.AutoUpdateState
}

var _ ports.AutoUpdater = (*AutoUpdater)(nil)

func NewAutoUpdater(bus *events.Bus, state domain.AutoUpdateState) *AutoUpdater {
	if state == "" {
		state = domain.AutoUpdateIdle
	}
	return &AutoUpdater{bus: bus, state: state}
}

func (u *AutoUpdater) Status() domain.AutoUpdateState {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

func (u *AutoUpdater) SetStatus(state domain.AutoUpdateState) {
	u.mu.Lock()
	if u.state == state {
		u.mu.Unlock()
		return
	}
	u.state = state
	u.mu.Unlock()

	u.bus.Publish(events.Event{Type: events.AutoUpdateChanged})
}

// DismissError returns an errored updater to idle.
func (u *AutoUpdater) DismissError() {
	if u.Status() == domain.AutoUpdateErrored {
		u.SetStatus(domain.AutoUpdateIdle)
	}
}

func (u *AutoUpdater) Observe(fn func()) func() {
	return u.bus.Subscribe(func(events.Event) { fn() }, events.AutoUpdateChanged)
}
