package application

import "github.com/bnema/activity-indicator/internal/domain"

type ClickResult struct {
	// Clicked is the content whose action was dispatched.
	Clicked domain.Content
	// Content is the status line after the action ran.
	Content domain.Content
	Reports []domain.ErrorReport
}
