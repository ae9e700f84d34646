package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

var ErrEmptyName = errors.New("name is required")

// Service runs the resolver and the dispatcher against a persisted snapshot
// of every status source.
type Service struct {
	repo      ports.SnapshotRepository
	sink      ports.ErrorSink
	restarter ports.Restarter
	clock     ports.Clock
	opts      ResolverOptions
	logger    *slog.Logger
}

func NewService(repo ports.SnapshotRepository, sink ports.ErrorSink, restarter ports.Restarter, clock ports.Clock, opts ResolverOptions, logger *slog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		repo:      repo,
		sink:      sink,
		restarter: restarter,
		clock:     clock,
		opts:      opts,
		logger:    logger,
	}
}

func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *Service) Resolve(ctx context.Context) (domain.Content, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Content{}, err
	}

	return s.newSession(snapshot, nil).resolver.Resolve(), nil
}

// Click resolves the current content, dispatches its action and persists
// whatever the action changed. The snapshot is saved even when reporting an
// error fails, since drained records are already gone from the table.
func (s *Service) Click(ctx context.Context) (ClickResult, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return ClickResult{}, err
	}

	recorder := &recordingSink{next: s.sink}
	sess := s.newSession(snapshot, recorder)
	clicked := sess.resolver.Resolve()
	if !clicked.Clickable() {
		return ClickResult{Clicked: clicked, Content: clicked}, nil
	}

	dispatchErr := sess.dispatcher.Dispatch(ctx, clicked.Action)

	if clicked.Action != domain.ActionRestartToUpdate {
		if err := s.repo.Save(ctx, sess.result()); err != nil {
			return ClickResult{}, fmt.Errorf("save snapshot after %s: %w", clicked.Action, errors.Join(err, dispatchErr))
		}
	}

	result := ClickResult{
		Clicked: clicked,
		Content: sess.resolver.Resolve(),
		Reports: recorder.reports,
	}
	if dispatchErr != nil {
		return result, fmt.Errorf("dispatch %s: %w", clicked.Action, dispatchErr)
	}
	return result, nil
}

// RecordClick persists the effect of an action already dispatched on a live
// indicator. Drained providers are removed only while the state file still
// holds the drained status, and a dismissed updater error is cleared only
// while the file still reports it. Other actions change nothing on disk.
func (s *Service) RecordClick(ctx context.Context, action domain.Action, drained []domain.StatusRecord) error {
	switch action {
	case domain.ActionShowErrors:
		if len(drained) == 0 {
			return nil
		}
		return s.mutate(ctx, "record drained failures", func(snapshot *domain.Snapshot) error {
			snapshot.Providers = slices.DeleteFunc(snapshot.Providers, func(record domain.StatusRecord) bool {
				return slices.Contains(drained, record)
			})
			return nil
		})
	case domain.ActionDismissUpdateError:
		return s.mutate(ctx, "record dismissed update error", func(snapshot *domain.Snapshot) error {
			if snapshot.Updater != nil && *snapshot.Updater == domain.AutoUpdateErrored {
				idle := domain.AutoUpdateIdle
				snapshot.Updater = &idle
			}
			return nil
		})
	default:
		return nil
	}
}

func (s *Service) SetInstallStatus(ctx context.Context, cmd SetInstallStatusCommand) error {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return ErrEmptyName
	}
	if !cmd.Status.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownInstallStatus, cmd.Status.Kind)
	}

	return s.mutate(ctx, "save install status", func(snapshot *domain.Snapshot) error {
		table := NewStatusTable(nil)
		for _, record := range snapshot.Providers {
			table.Update(record.Name, record.Status)
		}
		table.Update(name, cmd.Status)
		snapshot.Providers = table.Records()
		return nil
	})
}

func (s *Service) SetProgress(ctx context.Context, cmd SetProgressCommand) error {
	provider := strings.TrimSpace(cmd.Provider)
	token := strings.TrimSpace(cmd.Token)
	if provider == "" || token == "" {
		return ErrEmptyName
	}
	if cmd.Percentage != nil && (*cmd.Percentage < 0 || *cmd.Percentage > 100) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidPercentage, *cmd.Percentage)
	}

	return s.mutate(ctx, "save progress", func(snapshot *domain.Snapshot) error {
		idx := slices.IndexFunc(snapshot.LanguageServers, func(status domain.LanguageServerStatus) bool {
			return status.Name == provider
		})
		if idx < 0 {
			snapshot.LanguageServers = append(snapshot.LanguageServers, domain.LanguageServerStatus{Name: provider})
			idx = len(snapshot.LanguageServers) - 1
		}

		status := &snapshot.LanguageServers[idx]
		if status.PendingWork == nil {
			status.PendingWork = map[string]domain.Progress{}
		}
		status.PendingWork[token] = domain.Progress{
			Message:      cmd.Message,
			Percentage:   cmd.Percentage,
			LastUpdateAt: s.clock.Now(),
		}
		return nil
	})
}

func (s *Service) ClearProgress(ctx context.Context, cmd ClearProgressCommand) error {
	provider := strings.TrimSpace(cmd.Provider)
	if provider == "" {
		return ErrEmptyName
	}

	return s.mutate(ctx, "clear progress", func(snapshot *domain.Snapshot) error {
		idx := slices.IndexFunc(snapshot.LanguageServers, func(status domain.LanguageServerStatus) bool {
			return status.Name == provider
		})
		if idx < 0 {
			return fmt.Errorf("%w: %q", domain.ErrProviderNotFound, provider)
		}

		status := &snapshot.LanguageServers[idx]
		if cmd.Token == "" {
			status.PendingWork = nil
			return nil
		}
		delete(status.PendingWork, strings.TrimSpace(cmd.Token))
		return nil
	})
}

func (s *Service) SetUpdaterState(ctx context.Context, state domain.AutoUpdateState) error {
	if !state.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownAutoUpdateState, state)
	}

	return s.mutate(ctx, "save updater state", func(snapshot *domain.Snapshot) error {
		snapshot.Updater = &state
		return nil
	})
}

func (s *Service) DetachUpdater(ctx context.Context) error {
	return s.mutate(ctx, "detach updater", func(snapshot *domain.Snapshot) error {
		snapshot.Updater = nil
		return nil
	})
}

func (s *Service) PushTask(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyName
	}

	return s.mutate(ctx, "push task", func(snapshot *domain.Snapshot) error {
		snapshot.Tasks = append(snapshot.Tasks, description)
		return nil
	})
}

// PopTask removes the most recently activated task, or the most recent one
// matching description when it is not empty.
func (s *Service) PopTask(ctx context.Context, description string) error {
	description = strings.TrimSpace(description)

	return s.mutate(ctx, "pop task", func(snapshot *domain.Snapshot) error {
		for i := len(snapshot.Tasks) - 1; i >= 0; i-- {
			if description == "" || snapshot.Tasks[i] == description {
				snapshot.Tasks = slices.Delete(snapshot.Tasks, i, i+1)
				return nil
			}
		}
		return domain.ErrNoActiveTasks
	})
}

func (s *Service) mutate(ctx context.Context, op string, apply func(*domain.Snapshot) error) error {
	loaded, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	snapshot := cloneSnapshot(loaded)
	if err := apply(&snapshot); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type recordingSink struct {
	next    ports.ErrorSink
	reports []domain.ErrorReport
}

func (r *recordingSink) ShowError(ctx context.Context, report domain.ErrorReport) error {
	r.reports = append(r.reports, report)
	if r.next == nil {
		return nil
	}
	return r.next.ShowError(ctx, report)
}
