package ports

import (
	"context"

	"github.com/bnema/activity-indicator/internal/domain"
)

type Host interface {
	Render(content domain.Content)
}

type ErrorSink interface {
	ShowError(ctx context.Context, report domain.ErrorReport) error
}

type Restarter interface {
	Restart(ctx context.Context) error
}
