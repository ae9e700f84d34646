package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	statusadapter "github.com/bnema/activity-indicator/internal/adapters/render/status"
	filesource "github.com/bnema/activity-indicator/internal/adapters/source/file"
	"github.com/bnema/activity-indicator/internal/adapters/source/memory"
	"github.com/bnema/activity-indicator/internal/application"
	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/events"
	"github.com/bnema/activity-indicator/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var errWatchQuit = errors.New("watch quit")

func newWatchCmd(app *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the live status line",
		Long:  "watch re-renders the status line on every change to the state file. In a terminal, enter runs the current action and q quits. Otherwise one line is printed per change.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, app, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print one line per change instead of the interactive view")

	return cmd
}

func runWatch(cmd *cobra.Command, app *app, plain bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initial, err := app.service.Snapshot(ctx)
	if err != nil {
		return err
	}

	opts := statusadapter.RenderOptions{ShowAction: true}

	g, gctx := errgroup.WithContext(ctx)

	var session *watchSession
	if !plain && isTerminal(cmd.OutOrStdout()) {
		model := statusadapter.NewWatchModel(gctx, func(clickCtx context.Context) error {
			return session.indicator.Click(clickCtx)
		}, opts)
		program := tea.NewProgram(model,
			tea.WithContext(gctx),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		session = newWatchSession(app, initial, statusadapter.NewProgramHost(program))

		g.Go(func() error {
			_, err := program.Run()
			if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil) {
				return err
			}
			return errWatchQuit
		})
	} else {
		session = newWatchSession(app, initial, statusadapter.NewLineHost(cmd.OutOrStdout(), opts))
	}

	g.Go(func() error {
		return session.indicator.Run(gctx)
	})
	g.Go(func() error {
		select {
		case <-session.indicator.Ready():
		case <-gctx.Done():
			return nil
		}
		return session.source.Run(gctx)
	})

	app.logger.Info("watching state file", "path", app.repo.Path(), "updater_attached", initial.Updater != nil)

	if err := g.Wait(); err != nil && !errors.Is(err, errWatchQuit) {
		return err
	}
	return nil
}

// watchSession is the indicator fed by the state file. Clicks are written
// back to the state file so other commands see them.
type watchSession struct {
	app       *app
	indicator *application.Indicator
	source    *filesource.Source
}

func newWatchSession(app *app, initial domain.Snapshot, host ports.Host) *watchSession {
	bus := events.NewBus(app.logger)
	stream := memory.NewStatusStream(bus)
	project := memory.NewProject(bus)
	tasks := memory.NewTaskRegistry(bus)

	session := &watchSession{app: app}
	deps := application.IndicatorDeps{
		Stream:     stream,
		Project:    project,
		Tasks:      tasks,
		Host:       host,
		Sink:       app.sink,
		Restarter:  app.restarter,
		Logger:     app.logger,
		AfterClick: session.recordClick,
	}
	targets := filesource.Targets{Stream: stream, Project: project, Tasks: tasks}
	if initial.Updater != nil {
		updater := memory.NewAutoUpdater(bus, *initial.Updater)
		deps.Updater = updater
		targets.Updater = updater
	}

	session.source = filesource.NewSource(app.repo, app.repo.Path(), targets, app.logger)
	session.indicator = application.NewIndicator(deps, app.opts)
	return session
}

// recordClick saves the click and makes the source republish drained
// providers if the file reports them as failed again.
func (s *watchSession) recordClick(ctx context.Context, action domain.Action, drained []domain.StatusRecord) error {
	if err := s.app.service.RecordClick(ctx, action, drained); err != nil {
		return err
	}
	if action != domain.ActionShowErrors {
		return nil
	}

	names := make([]string, 0, len(drained))
	for _, record := range drained {
		names = append(names, record.Name)
	}
	s.source.Forget(names...)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
