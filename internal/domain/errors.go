package domain

import "errors"

var (
	ErrUnknownInstallStatus   = errors.New("unknown install status")
	ErrUnknownAutoUpdateState = errors.New("unknown auto update state")
	ErrUnknownAction          = errors.New("unknown action")
	ErrProviderNotFound       = errors.New("provider not found")
	ErrNoActiveTasks          = errors.New("no active tasks")
)

var ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
