package application

import (
	"maps"
	"slices"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

// The snapshot sources are static views over a loaded domain.Snapshot. They
// never change on their own, so Observe never fires.

type snapshotProject struct {
	statuses []domain.LanguageServerStatus
}

var _ ports.Project = (*snapshotProject)(nil)

func (p *snapshotProject) LanguageServerStatuses() []domain.LanguageServerStatus {
	return p.statuses
}

func (p *snapshotProject) Observe(func()) func() { return func() {} }

type snapshotUpdater struct {
	state domain.AutoUpdateState
}

var _ ports.AutoUpdater = (*snapshotUpdater)(nil)

func (u *snapshotUpdater) Status() domain.AutoUpdateState { return u.state }

func (u *snapshotUpdater) DismissError() {
	if u.state == domain.AutoUpdateErrored {
		u.state = domain.AutoUpdateIdle
	}
}

func (u *snapshotUpdater) Observe(func()) func() { return func() {} }

type snapshotTasks struct {
	tasks []string
}

var _ ports.TaskRegistry = (*snapshotTasks)(nil)

func (t *snapshotTasks) ActiveTasks() []string { return t.tasks }

func (t *snapshotTasks) Observe(func()) func() { return func() {} }

// session wires a resolver and a dispatcher over one loaded snapshot.
type session struct {
	table      *StatusTable
	updater    *snapshotUpdater
	resolver   *Resolver
	dispatcher *Dispatcher
	snapshot   domain.Snapshot
}

func (s *Service) newSession(snapshot domain.Snapshot, sink ports.ErrorSink) *session {
	table := NewStatusTable(nil)
	for _, record := range snapshot.Providers {
		table.Update(record.Name, record.Status)
	}

	var updater ports.AutoUpdater
	var concrete *snapshotUpdater
	if snapshot.Updater != nil {
		concrete = &snapshotUpdater{state: *snapshot.Updater}
		updater = concrete
	}

	project := &snapshotProject{statuses: snapshot.LanguageServers}
	tasks := &snapshotTasks{tasks: snapshot.Tasks}

	return &session{
		table:      table,
		updater:    concrete,
		resolver:   NewResolver(table, project, updater, tasks, s.opts),
		dispatcher: NewDispatcher(table, updater, sink, s.restarter, s.logger),
		snapshot:   snapshot,
	}
}

// result folds the session's mutable state back into a snapshot.
func (ss *session) result() domain.Snapshot {
	out := ss.snapshot
	out.Providers = ss.table.Records()
	if ss.updater != nil {
		state := ss.updater.state
		out.Updater = &state
	}
	return out
}

func cloneLanguageServers(statuses []domain.LanguageServerStatus) []domain.LanguageServerStatus {
	cloned := make([]domain.LanguageServerStatus, 0, len(statuses))
	for _, status := range statuses {
		cloned = append(cloned, domain.LanguageServerStatus{
			Name:        status.Name,
			PendingWork: maps.Clone(status.PendingWork),
		})
	}
	return cloned
}

func cloneSnapshot(snapshot domain.Snapshot) domain.Snapshot {
	out := domain.Snapshot{
		Providers:       slices.Clone(snapshot.Providers),
		LanguageServers: cloneLanguageServers(snapshot.LanguageServers),
		Tasks:           slices.Clone(snapshot.Tasks),
	}
	if snapshot.Updater != nil {
		state := *snapshot.Updater
		out.Updater = &state
	}
	return out
}
