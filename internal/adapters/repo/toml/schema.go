package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version         int                    `toml:"version"`
	Providers       []providerSchema       `toml:"providers,omitempty"`
	LanguageServers []languageServerSchema `toml:"language_servers,omitempty"`
	Updater         *updaterSchema         `toml:"updater,omitempty"`
	Tasks           []string               `toml:"tasks,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type providerSchema struct {
	Name   string `toml:"name"`
	Status string `toml:"status"`
	Error  string `toml:"error,omitempty"`
}

type languageServerSchema struct {
	Name     string           `toml:"name"`
	Progress []progressSchema `toml:"progress,omitempty"`
}

type progressSchema struct {
	Token        string  `toml:"token"`
	Message      *string `toml:"message,omitempty"`
	Percentage   *int    `toml:"percentage,omitempty"`
	LastUpdateAt string  `toml:"last_update_at"`
}

type updaterSchema struct {
	Status string `toml:"status"`
}
