package application

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

// observers is a minimal Observable shared by the fake sources.
type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (o *observers) Observe(fn func()) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = map[int]func(){}
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.fns, id)
	}
}

func (o *observers) notify() {
	o.mu.Lock()
	fns := slices.Collect(maps.Values(o.fns))
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (o *observers) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

type fakeProject struct {
	observers
	mu       sync.Mutex
	statuses []domain.LanguageServerStatus
}

var _ ports.Project = (*fakeProject)(nil)

func (p *fakeProject) LanguageServerStatuses() []domain.LanguageServerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.LanguageServerStatus, 0, len(p.statuses))
	for _, status := range p.statuses {
		out = append(out, domain.LanguageServerStatus{Name: status.Name, PendingWork: maps.Clone(status.PendingWork)})
	}
	return out
}

func (p *fakeProject) SetProgress(provider, token string, progress domain.Progress) {
	p.mu.Lock()
	idx := slices.IndexFunc(p.statuses, func(status domain.LanguageServerStatus) bool { return status.Name == provider })
	if idx < 0 {
		p.statuses = append(p.statuses, domain.LanguageServerStatus{Name: provider, PendingWork: map[string]domain.Progress{}})
		idx = len(p.statuses) - 1
	}
	p.statuses[idx].PendingWork[token] = progress
	p.mu.Unlock()

	p.notify()
}

func (p *fakeProject) ClearProgress(provider, token string) {
	p.mu.Lock()
	for i := range p.statuses {
		if p.statuses[i].Name != provider {
			continue
		}
		if token == "" {
			p.statuses[i].PendingWork = map[string]domain.Progress{}
		} else {
			delete(p.statuses[i].PendingWork, token)
		}
	}
	p.mu.Unlock()

	p.notify()
}

type fakeUpdater struct {
	observers
	mu    sync.Mutex
	state domain.AutoUpdateState
}

var _ ports.AutoUpdater = (*fakeUpdater)(nil)

func (u *fakeUpdater) Status() domain.AutoUpdateState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *fakeUpdater) SetStatus(state domain.AutoUpdateState) {
	u.mu.Lock()
	u.state = state
	u.mu.Unlock()

	u.notify()
}

func (u *fakeUpdater) DismissError() {
	if u.Status() == domain.AutoUpdateErrored {
		u.SetStatus(domain.AutoUpdateIdle)
	}
}

type fakeTasks struct {
	observers
	mu    sync.Mutex
	tasks []string
}

var _ ports.TaskRegistry = (*fakeTasks)(nil)

func (r *fakeTasks) ActiveTasks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tasks)
}

func (r *fakeTasks) Start(description string) {
	r.mu.Lock()
	r.tasks = append(r.tasks, description)
	r.mu.Unlock()

	r.notify()
}

type fakeStream struct {
	mu   sync.Mutex
	next int
	subs map[int]chan domain.StatusEvent
}

var _ ports.StatusStream = (*fakeStream)(nil)

func (s *fakeStream) Subscribe(ctx context.Context) <-chan domain.StatusEvent {
	ch := make(chan domain.StatusEvent, 64)

	s.mu.Lock()
	if s.subs == nil {
		s.subs = map[int]chan domain.StatusEvent{}
	}
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (s *fakeStream) Publish(name string, status domain.InstallStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		ch <- domain.StatusEvent{Name: name, Status: status}
	}
}

func (s *fakeStream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
