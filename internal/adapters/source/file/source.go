package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/activity-indicator/internal/domain"
)

const defaultDebounce = 50 * time.Millisecond

type Loader interface {
	Load(ctx context.Context) (domain.Snapshot, error)
}

type StatusPublisher interface {
	Publish(name string, status domain.InstallStatus)
}

type ProjectReplacer interface {
	Replace(statuses []domain.LanguageServerStatus)
}

type UpdaterSetter interface {
	SetStatus(state domain.AutoUpdateState)
}

type TasksReplacer interface {
	Replace(tasks []string)
}

// Targets are the in-memory sources a Source keeps in step with the state
// file. Updater may be nil when no updater is attached.
type Targets struct {
	Stream  StatusPublisher
	Project ProjectReplacer
	Updater UpdaterSetter
	Tasks   TasksReplacer
}

// Source watches the state file and mirrors every saved snapshot into the
// in-memory sources. Provider statuses are published only when they differ
// from the last applied snapshot.
type Source struct {
	loader   Loader
	path     string
	targets  Targets
	logger   *slog.Logger
	debounce time.Duration

	mu   sync.Mutex
	last map[string]domain.InstallStatus
}

func NewSource(loader Loader, path string, targets Targets, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Source{
		loader:   loader,
		path:     filepath.Clean(path),
		targets:  targets,
		logger:   logger,
		debounce: defaultDebounce,
		last:     make(map[string]domain.InstallStatus),
	}
}

// Sync loads the state file once and applies it.
func (s *Source) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	s.apply(snapshot)
	return nil
}

// Forget drops the last applied status of each name, so the next Sync
// publishes those providers again even when the file still holds the same
// status.
func (s *Source) Forget(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		delete(s.last, name)
	}
}

// Run applies the current state and then re-applies it after every write to
// the state file until ctx is done. The parent directory is watched so
// atomic replacements are seen.
func (s *Source) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	s.syncLogged(ctx)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			timer.Reset(s.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.logger.Warn("state watcher overflowed, resyncing")
				timer.Reset(s.debounce)
				continue
			}
			s.logger.Error("state watcher failed", "error", err)
		case <-timer.C:
			s.syncLogged(ctx)
		}
	}
}

func (s *Source) syncLogged(ctx context.Context) {
	if err := s.Sync(ctx); err != nil {
		s.logger.Warn("state reload skipped", "path", s.path, "error", err)
	}
}

func (s *Source) apply(snapshot domain.Snapshot) {
	if s.targets.Stream != nil {
		for _, record := range snapshot.Providers {
			if previous, ok := s.last[record.Name]; ok && previous == record.Status {
				continue
			}
			s.last[record.Name] = record.Status
			s.targets.Stream.Publish(record.Name, record.Status)
		}
	}

	if s.targets.Project != nil {
		s.targets.Project.Replace(snapshot.LanguageServers)
	}

	if s.targets.Updater != nil {
		state := domain.AutoUpdateIdle
		if snapshot.Updater != nil {
			state = *snapshot.Updater
		} else {
			s.logger.Debug("updater detached in state file, treating as idle")
		}
		s.targets.Updater.SetStatus(state)
	}

	if s.targets.Tasks != nil {
		s.targets.Tasks.Replace(snapshot.Tasks)
	}
}
