package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

// Dispatcher turns a Content action into its side effect.
type Dispatcher struct {
	table     *StatusTable
	updater   ports.AutoUpdater
	sink      ports.ErrorSink
	restarter ports.Restarter
	logger    *slog.Logger
}

// NewDispatcher builds a dispatcher. updater may be nil when no auto-updater
// is attached.
func NewDispatcher(table *StatusTable, updater ports.AutoUpdater, sink ports.ErrorSink, restarter ports.Restarter, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		table:     table,
		updater:   updater,
		sink:      sink,
		restarter: restarter,
		logger:    logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action) error {
	_, err := d.Apply(ctx, action)
	return err
}

// Apply runs action like Dispatch and also returns the records it drained
// from the table, in table order.
func (d *Dispatcher) Apply(ctx context.Context, action domain.Action) ([]domain.StatusRecord, error) {
	switch action {
	case domain.ActionNone:
		return nil, nil
	case domain.ActionShowErrors:
		return d.showErrors(ctx)
	case domain.ActionDismissUpdateError:
		d.dismissUpdateError()
		return nil, nil
	case domain.ActionRestartToUpdate:
		return nil, d.restart(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}
}

// showErrors drains every failed record and reports each one, in table order.
// Sink failures do not put records back into the table.
func (d *Dispatcher) showErrors(ctx context.Context) ([]domain.StatusRecord, error) {
	drained := d.table.DrainFailed()
	d.logger.Info("drained failed install statuses", "count", len(drained))

	var errs error
	for _, record := range drained {
		report := domain.ErrorReport{ProviderName: record.Name, Error: record.Status.Error}
		if d.sink == nil {
			continue
		}
		if err := d.sink.ShowError(ctx, report); err != nil {
			d.logger.Error("show error report", "provider", record.Name, "error", err)
			errs = errors.Join(errs, fmt.Errorf("show error for %s: %w", record.Name, err))
		}
	}

	return drained, errs
}

func (d *Dispatcher) dismissUpdateError() {
	if d.updater == nil {
		return
	}
	d.updater.DismissError()
}

func (d *Dispatcher) restart(ctx context.Context) error {
	if d.restarter == nil {
		return nil
	}
	d.logger.Info("restart requested")
	if err := d.restarter.Restart(ctx); err != nil {
		return fmt.Errorf("restart to update: %w", err)
	}
	return nil
}
