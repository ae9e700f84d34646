package domain

// Snapshot is a point-in-time picture of every status source. A nil Updater
// means no auto-updater is attached.
type Snapshot struct {
	Providers       []StatusRecord
	LanguageServers []LanguageServerStatus
	Updater         *AutoUpdateState
	Tasks           []string
}
