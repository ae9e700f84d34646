package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

type IndicatorDeps struct {
	Stream    ports.StatusStream
	Project   ports.Project
	Updater   ports.AutoUpdater
	Tasks     ports.TaskRegistry
	Host      ports.Host
	Sink      ports.ErrorSink
	Restarter ports.Restarter
	Logger    *slog.Logger

	// AfterClick, when set, runs on the loop goroutine after a clicked
	// action, with the records that action drained.
	AfterClick func(ctx context.Context, action domain.Action, drained []domain.StatusRecord) error
}

type clickRequest struct {
	ctx  context.Context
	done chan error
}

// Indicator owns the status table and drives the re-render loop. Every
// trigger is handled on the goroutine running Run, so status updates and the
// show-errors drain never interleave.
type Indicator struct {
	table      *StatusTable
	resolver   *Resolver
	dispatcher *Dispatcher
	deps       IndicatorDeps
	logger     *slog.Logger

	triggers chan struct{}
	clicks   chan clickRequest

	ready     chan struct{}
	readyOnce sync.Once

	mu      sync.RWMutex
	current domain.Content
}

func NewIndicator(deps IndicatorDeps, opts ResolverOptions) *Indicator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ind := &Indicator{
		deps:     deps,
		logger:   logger,
		triggers: make(chan struct{}, 1),
		clicks:   make(chan clickRequest),
		ready:    make(chan struct{}),
	}
	ind.table = NewStatusTable(ind.notify)
	ind.resolver = NewResolver(ind.table, deps.Project, deps.Updater, deps.Tasks, opts)
	ind.dispatcher = NewDispatcher(ind.table, deps.Updater, deps.Sink, deps.Restarter, logger)
	return ind
}

// Ready is closed once Run has subscribed to every source.
func (i *Indicator) Ready() <-chan struct{} {
	return i.ready
}

func (i *Indicator) Table() *StatusTable {
	return i.table
}

// Content returns the most recently rendered content.
func (i *Indicator) Content() domain.Content {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.current
}

// Run subscribes to every source and re-renders on each change until ctx is
// done. All subscriptions are cancelled before Run returns, and Host.Render is
// never called after that.
func (i *Indicator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, source := range i.observables() {
		stop := source.Observe(i.notify)
		defer stop()
	}

	var events <-chan domain.StatusEvent
	if i.deps.Stream != nil {
		events = i.deps.Stream.Subscribe(ctx)
	}

	i.readyOnce.Do(func() { close(i.ready) })

	i.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				i.logger.Warn("provider status stream closed")
				events = nil
				continue
			}
			i.table.Update(event.Name, event.Status)
		case <-i.triggers:
			i.render()
		case req := <-i.clicks:
			req.done <- i.click(req.ctx)
			i.render()
		}
	}
}

// Click dispatches the action of the currently displayed content on the
// loop goroutine. It blocks until the action has run or ctx is done.
func (i *Indicator) Click(ctx context.Context) error {
	req := clickRequest{ctx: ctx, done: make(chan error, 1)}
	select {
	case i.clicks <- req:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (i *Indicator) click(ctx context.Context) error {
	action := i.Content().Action
	drained, err := i.dispatcher.Apply(ctx, action)
	if action == domain.ActionNone || i.deps.AfterClick == nil {
		return err
	}

	if hookErr := i.deps.AfterClick(ctx, action, drained); hookErr != nil {
		i.logger.Error("after click", "action", action, "error", hookErr)
		err = errors.Join(err, hookErr)
	}
	return err
}

// notify requests a re-render. Bursts collapse into one pending trigger.
func (i *Indicator) notify() {
	select {
	case i.triggers <- struct{}{}:
	default:
	}
}

func (i *Indicator) render() {
	content := i.resolver.Resolve()

	i.mu.Lock()
	i.current = content
	i.mu.Unlock()

	if i.deps.Host != nil {
		i.deps.Host.Render(content)
	}
}

func (i *Indicator) observables() []ports.Observable {
	var sources []ports.Observable
	if i.deps.Project != nil {
		sources = append(sources, i.deps.Project)
	}
	if i.deps.Updater != nil {
		sources = append(sources, i.deps.Updater)
	}
	if i.deps.Tasks != nil {
		sources = append(sources, i.deps.Tasks)
	}
	return sources
}
