package application

import "github.com/bnema/activity-indicator/internal/domain"

type SetInstallStatusCommand struct {
	Name   string
	Status domain.InstallStatus
}

type SetProgressCommand struct {
	Provider   string
	Token      string
	Message    *string
	Percentage *int
}

type ClearProgressCommand struct {
	Provider string
	// Token empty clears every token of the provider.
	Token string
}
