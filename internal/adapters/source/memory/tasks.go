package memory

import (
	"slices"
	"sync"

	"github.com/bnema/activity-indicator/internal/events"
	"github.com/bnema/activity-indicator/internal/ports"
)

type TaskRegistry struct {
	bus   *events.Bus
	mu    sync.RWMutex
	tasks []string
}

var _ ports.TaskRegistry = (*TaskRegistry)(nil)

func NewTaskRegistry(bus *events.Bus) *TaskRegistry {
	return &TaskRegistry{bus: bus}
}

func (r *TaskRegistry) ActiveTasks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tasks)
}

// Start activates a task and returns the func that ends it.
func (r *TaskRegistry) Start(description string) (done func()) {
	r.mu.Lock()
	r.tasks = append(r.tasks, description)
	r.mu.Unlock()
	r.changed()

	return func() { r.finish(description) }
}

func (r *TaskRegistry) Replace(tasks []string) {
	r.mu.Lock()
	r.tasks = slices.Clone(tasks)
	r.mu.Unlock()
	r.changed()
}

func (r *TaskRegistry) Observe(fn func()) func() {
	return r.bus.Subscribe(func(events.Event) { fn() }, events.TasksChanged)
}

func (r *TaskRegistry) finish(description string) {
	r.mu.Lock()
	idx := slices.Index(r.tasks, description)
	if idx < 0 {
		r.mu.Unlock()
		return
	}
	r.tasks = slices.Delete(r.tasks, idx, idx+1)
	r.mu.Unlock()
	r.changed()
}

func (r *TaskRegistry) changed() {
	r.bus.Publish(events.Event{Type: events.TasksChanged})
}
