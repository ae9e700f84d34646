package domain

import (
	"fmt"
	"strings"
)

type InstallStatusKind string

const (
	InstallCheckingForUpdate InstallStatusKind = "checking_for_update"
	InstallDownloading       InstallStatusKind = "downloading"
	InstallDownloaded        InstallStatusKind = "downloaded"
	InstallCached            InstallStatusKind = "cached"
	InstallFailed            InstallStatusKind = "failed"
)

func (k InstallStatusKind) Valid() bool {
	switch k {
	case InstallCheckingForUpdate, InstallDownloading, InstallDownloaded, InstallCached, InstallFailed:
		return true
	default:
		return false
	}
}

func ParseInstallStatusKind(raw string) (InstallStatusKind, error) {
	kind := InstallStatusKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownInstallStatus, raw)
	}

	return kind, nil
}

// InstallStatus is the fetch/cache lifecycle state of a provider binary.
// Error is only meaningful when Kind is InstallFailed.
type InstallStatus struct {
	Kind  InstallStatusKind
	Error string
}

func CheckingForUpdate() InstallStatus { return InstallStatus{Kind: InstallCheckingForUpdate} }
func Downloading() InstallStatus       { return InstallStatus{Kind: InstallDownloading} }
func Downloaded() InstallStatus        { return InstallStatus{Kind: InstallDownloaded} }
func Cached() InstallStatus            { return InstallStatus{Kind: InstallCached} }

func Failed(err string) InstallStatus {
	return InstallStatus{Kind: InstallFailed, Error: err}
}

func (s InstallStatus) IsFailed() bool {
	return s.Kind == InstallFailed
}

type StatusRecord struct {
	Name   string
	Status InstallStatus
}

// StatusEvent is one element of the provider status stream.
type StatusEvent struct {
	Name   string
	Status InstallStatus
}
