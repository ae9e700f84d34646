package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/events"
	"github.com/bnema/activity-indicator/internal/ports"
)

// Project keeps per-provider progress in registration order.
type Project struct {
	bus      *events.Bus
	mu       sync.RWMutex
	statuses []domain.LanguageServerStatus
}

var _ ports.Project = (*Project)(nil)

func NewProject(bus *events.Bus) *Project {
	return &Project{bus: bus}
}

func (p *Project) LanguageServerStatuses() []domain.LanguageServerStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.LanguageServerStatus, 0, len(p.statuses))
	for _, status := range p.statuses {
		out = append(out, domain.LanguageServerStatus{
			Name:        status.Name,
			PendingWork: maps.Clone(status.PendingWork),
		})
	}
	return out
}

func (p *Project) Observe(fn func()) func() {
	return p.bus.Subscribe(func(events.Event) { fn() }, events.ProjectChanged)
}

// SetProgress registers the provider on first use and records progress for token.
func (p *Project) SetProgress(provider, token string, progress domain.Progress) {
	p.mu.Lock()
	idx := p.indexLocked(provider)
	if idx < 0 {
		p.statuses = append(p.statuses, domain.LanguageServerStatus{Name: provider})
		idx = len(p.statuses) - 1
	}
	if p.statuses[idx].PendingWork == nil {
		p.statuses[idx].PendingWork = map[string]domain.Progress{}
	}
	p.statuses[idx].PendingWork[token] = progress
	p.mu.Unlock()

	p.changed()
}

// ClearProgress removes one token, or every token of provider when token is empty.
func (p *Project) ClearProgress(provider, token string) {
	p.mu.Lock()
	idx := p.indexLocked(provider)
	if idx < 0 {
		p.mu.Unlock()
		return
	}
	if token == "" {
		p.statuses[idx].PendingWork = nil
	} else {
		delete(p.statuses[idx].PendingWork, token)
	}
	p.mu.Unlock()

	p.changed()
}

// Replace swaps the whole provider list.
func (p *Project) Replace(statuses []domain.LanguageServerStatus) {
	p.mu.Lock()
	p.statuses = slices.Clone(statuses)
	p.mu.Unlock()

	p.changed()
}

func (p *Project) indexLocked(provider string) int {
	return slices.IndexFunc(p.statuses, func(status domain.LanguageServerStatus) bool {
		return status.Name == provider
	})
}

func (p *Project) changed() {
	p.bus.Publish(events.Event{Type: events.ProjectChanged})
}
