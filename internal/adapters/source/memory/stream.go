package memory

import (
	"context"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/events"
	"github.com/bnema/activity-indicator/internal/ports"
)

const streamBuffer = 64

// StatusStream broadcasts provider install statuses to every subscriber.
// Publish blocks while a subscriber's buffer is full.
type StatusStream struct {
	bus *events.Bus
}

var _ ports.StatusStream = (*StatusStream)(nil)

func NewStatusStream(bus *events.Bus) *StatusStream {
	return &StatusStream{bus: bus}
}

func (s *StatusStream) Publish(name string, status domain.InstallStatus) {
	s.bus.Publish(events.Event{
		Type:   events.InstallStatusChanged,
		Status: &domain.StatusEvent{Name: name, Status: status},
	})
}

func (s *StatusStream) Subscribe(ctx context.Context) <-chan domain.StatusEvent {
	ch := make(chan domain.StatusEvent, streamBuffer)
	cancel := s.bus.Subscribe(func(e events.Event) {
		if e.Status == nil {
			return
		}
		select {
		case ch <- *e.Status:
		case <-ctx.Done():
		}
	}, events.InstallStatusChanged)

	go func() {
		<-ctx.Done()
		cancel()
		close(ch)
	}()

	return ch
}
