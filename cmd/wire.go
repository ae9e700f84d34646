package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/activity-indicator/internal/adapters/config"
	"github.com/bnema/activity-indicator/internal/adapters/logging"
	statusadapter "github.com/bnema/activity-indicator/internal/adapters/render/status"
	tomlrepo "github.com/bnema/activity-indicator/internal/adapters/repo/toml"
	"github.com/bnema/activity-indicator/internal/adapters/restart"
	"github.com/bnema/activity-indicator/internal/adapters/review"
	"github.com/bnema/activity-indicator/internal/application"
	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg       config.Config
	opts      application.ResolverOptions
	repo      *tomlrepo.Repository
	service   *application.Service
	sink      ports.ErrorSink
	restarter ports.Restarter
	logger    *slog.Logger
	renderer  func(domain.Content, statusadapter.RenderOptions) (string, error)
	closers   []io.Closer
}

// wireApp builds the application from config. Error reports and restart
// requests are written to reportOut unless review.dir or restart.command
// say otherwise.
func wireApp(v *viper.Viper, reportOut io.Writer) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	v.Set(tomlrepo.StatePathKey, cfg.State.Path)
	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	var sink ports.ErrorSink = review.NewWriterSink(reportOut)
	if cfg.Review.Dir != "" {
		sink = review.NewDirSink(cfg.Review.Dir)
	}
	restarter := restart.NewCommandRestarter(cfg.Restart.Command, reportOut)

	opts := application.ResolverOptions{IdleFallsThrough: cfg.Resolver.IdleFallsThrough}
	logger.Debug("wired application", "state", repo.Path(), "review_dir", cfg.Review.Dir, "idle_falls_through", opts.IdleFallsThrough)

	return &app{
		cfg:       cfg,
		opts:      opts,
		repo:      repo,
		service:   application.NewService(repo, sink, restarter, ports.SystemClock{}, opts, logger),
		sink:      sink,
		restarter: restarter,
		logger:    logger,
		renderer:  statusadapter.Render,
		closers:   []io.Closer{logCloser},
	}, nil
}

func (a *app) Close() error {
	var errs []error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
