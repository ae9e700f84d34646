package domain

import (
	"fmt"
	"strings"
)

type AutoUpdateState string

const (
	AutoUpdateIdle        AutoUpdateState = "idle"
	AutoUpdateChecking    AutoUpdateState = "checking"
	AutoUpdateDownloading AutoUpdateState = "downloading"
	AutoUpdateInstalling  AutoUpdateState = "installing"
	AutoUpdateUpdated     AutoUpdateState = "updated"
	AutoUpdateErrored     AutoUpdateState = "errored"
)

func (s AutoUpdateState) Valid() bool {
	switch s {
	case AutoUpdateIdle, AutoUpdateChecking, AutoUpdateDownloading, AutoUpdateInstalling, AutoUpdateUpdated, AutoUpdateErrored:
		return true
	default:
		return false
	}
}

func ParseAutoUpdateState(raw string) (AutoUpdateState, error) {
	state := AutoUpdateState(strings.ToLower(strings.TrimSpace(raw)))
	if !state.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAutoUpdateState, raw)
	}

	return state, nil
}
