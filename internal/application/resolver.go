package application

import (
	"fmt"
	"strings"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

const (
	autoUpdateCheckingMessage    = "Checking for updates…"
	autoUpdateDownloadingMessage = "Downloading update…"
	autoUpdateInstallingMessage  = "Installing update…"
	autoUpdateUpdatedMessage     = "Click to restart and update"
	autoUpdateErroredMessage     = "Auto update failed"
)

type ResolverOptions struct {
	// IdleFallsThrough lets an attached but idle auto-updater fall through to
	// the ambient task stage instead of ending the cascade with empty content.
	IdleFallsThrough bool
}

// Resolver reduces the current state of every status source to one Content.
type Resolver struct {
	table   *StatusTable
	project ports.Project
	updater ports.AutoUpdater
	tasks   ports.TaskRegistry
	opts    ResolverOptions
}

// NewResolver builds a resolver. updater may be nil when no auto-updater is
// attached; project and tasks may be nil when the source does not exist.
func NewResolver(table *StatusTable, project ports.Project, updater ports.AutoUpdater, tasks ports.TaskRegistry, opts ResolverOptions) *Resolver {
	return &Resolver{
		table:   table,
		project: project,
		updater: updater,
		tasks:   tasks,
		opts:    opts,
	}
}

func (r *Resolver) Resolve() domain.Content {
	if content, ok := r.pendingWorkContent(); ok {
		return content
	}
	if content, ok := r.installContent(); ok {
		return content
	}
	if content, ok := r.autoUpdateContent(); ok {
		return content
	}
	if content, ok := r.taskContent(); ok {
		return content
	}
	return domain.Content{}
}

func (r *Resolver) pendingWorkContent() (domain.Content, bool) {
	if r.project == nil {
		return domain.Content{}, false
	}

	work := CollectPendingWork(r.project.LanguageServerStatuses())
	if len(work) == 0 {
		return domain.Content{}, false
	}

	head := work[0]
	var message strings.Builder
	message.WriteString(head.ProviderName)
	message.WriteString(": ")
	message.WriteString(head.Label())
	if head.Progress.Percentage != nil {
		fmt.Fprintf(&message, " (%d%%)", *head.Progress.Percentage)
	}
	if more := len(work) - 1; more > 0 {
		fmt.Fprintf(&message, " + %d more", more)
	}

	return domain.Content{Message: message.String()}, true
}

func (r *Resolver) installContent() (domain.Content, bool) {
	if r.table == nil {
		return domain.Content{}, false
	}

	var downloading, checking, failed []string
	for _, record := range r.table.Records() {
		switch record.Status.Kind {
		case domain.InstallDownloading:
			downloading = append(downloading, record.Name)
		case domain.InstallCheckingForUpdate:
			checking = append(checking, record.Name)
		case domain.InstallFailed:
			failed = append(failed, record.Name)
		}
	}

	switch {
	case len(downloading) > 0:
		return domain.Content{
			Icon:    domain.IconDownload,
			Message: fmt.Sprintf("Downloading %s language server%s...", strings.Join(downloading, ", "), plural(downloading)),
		}, true
	case len(checking) > 0:
		return domain.Content{
			Icon:    domain.IconDownload,
			Message: fmt.Sprintf("Checking for updates to %s language server%s...", strings.Join(checking, ", "), plural(checking)),
		}, true
	case len(failed) > 0:
		return domain.Content{
			Icon:    domain.IconWarning,
			Message: fmt.Sprintf("Failed to download %s language server%s. Click to show error.", strings.Join(failed, ", "), plural(failed)),
			Action:  domain.ActionShowErrors,
		}, true
	default:
		return domain.Content{}, false
	}
}

// autoUpdateContent ends the cascade whenever an updater is attached, even
// when it is idle and the content is empty, unless IdleFallsThrough is set.
func (r *Resolver) autoUpdateContent() (domain.Content, bool) {
	if r.updater == nil {
		return domain.Content{}, false
	}

	switch r.updater.Status() {
	case domain.AutoUpdateChecking:
		return domain.Content{Icon: domain.IconDownload, Message: autoUpdateCheckingMessage}, true
	case domain.AutoUpdateDownloading:
		return domain.Content{Icon: domain.IconDownload, Message: autoUpdateDownloadingMessage}, true
	case domain.AutoUpdateInstalling:
		return domain.Content{Icon: domain.IconDownload, Message: autoUpdateInstallingMessage}, true
	case domain.AutoUpdateUpdated:
		return domain.Content{Message: autoUpdateUpdatedMessage, Action: domain.ActionRestartToUpdate}, true
	case domain.AutoUpdateErrored:
		return domain.Content{Icon: domain.IconWarning, Message: autoUpdateErroredMessage, Action: domain.ActionDismissUpdateError}, true
	default:
		return domain.Content{}, !r.opts.IdleFallsThrough
	}
}

func (r *Resolver) taskContent() (domain.Content, bool) {
	if r.tasks == nil {
		return domain.Content{}, false
	}

	tasks := r.tasks.ActiveTasks()
	if len(tasks) == 0 {
		return domain.Content{}, false
	}

	return domain.Content{Message: tasks[len(tasks)-1]}, true
}

func plural(names []string) string {
	if len(names) > 1 {
		return "s"
	}
	return ""
}
