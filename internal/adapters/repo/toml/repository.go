package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	StatePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".config/actind"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"
)

type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SnapshotRepository = (*Repository)(nil)

// NewRepository reads the state path from cfg, falling back to
// ~/.config/actind/state.toml.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	statePath := cfg.GetString(StatePathKey)
	if statePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		statePath = filepath.Join(homeDir, stateConfigDir, stateConfigFile)
	}

	statePath, err := normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *Repository) Path() string {
	return r.statePath
}

func (r *Repository) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Snapshot{}, err
	}

	return fromSchema(file)
}

func (r *Repository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(snapshot))
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(snapshot domain.Snapshot) fileSchema {
	file := fileSchema{
		Version: currentSchemaVersion,
		Tasks:   slices.Clone(snapshot.Tasks),
	}

	for _, record := range snapshot.Providers {
		file.Providers = append(file.Providers, providerSchema{
			Name:   record.Name,
			Status: string(record.Status.Kind),
			Error:  record.Status.Error,
		})
	}

	for _, status := range snapshot.LanguageServers {
		tokens := make([]string, 0, len(status.PendingWork))
		for token := range status.PendingWork {
			tokens = append(tokens, token)
		}
		slices.Sort(tokens)

		entry := languageServerSchema{Name: status.Name}
		for _, token := range tokens {
			progress := status.PendingWork[token]
			entry.Progress = append(entry.Progress, progressSchema{
				Token:        token,
				Message:      progress.Message,
				Percentage:   progress.Percentage,
				LastUpdateAt: formatTime(progress.LastUpdateAt),
			})
		}
		file.LanguageServers = append(file.LanguageServers, entry)
	}

	if snapshot.Updater != nil {
		file.Updater = &updaterSchema{Status: string(*snapshot.Updater)}
	}

	return file
}

func fromSchema(file fileSchema) (domain.Snapshot, error) {
	var snapshot domain.Snapshot

	for _, provider := range file.Providers {
		kind, err := domain.ParseInstallStatusKind(provider.Status)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode provider %q: %w", provider.Name, err)
		}
		status := domain.InstallStatus{Kind: kind}
		if kind == domain.InstallFailed {
			status.Error = provider.Error
		}
		snapshot.Providers = append(snapshot.Providers, domain.StatusRecord{Name: provider.Name, Status: status})
	}

	for _, server := range file.LanguageServers {
		status := domain.LanguageServerStatus{Name: server.Name}
		if len(server.Progress) > 0 {
			status.PendingWork = make(map[string]domain.Progress, len(server.Progress))
		}
		for _, progress := range server.Progress {
			if p := progress.Percentage; p != nil && (*p < 0 || *p > 100) {
				return domain.Snapshot{}, fmt.Errorf("decode progress %q of %q: %w: %d", progress.Token, server.Name, domain.ErrInvalidPercentage, *p)
			}
			lastUpdateAt, err := parseTime(progress.LastUpdateAt)
			if err != nil {
				return domain.Snapshot{}, fmt.Errorf("decode progress %q of %q: %w", progress.Token, server.Name, err)
			}
			status.PendingWork[progress.Token] = domain.Progress{
				Message:      progress.Message,
				Percentage:   progress.Percentage,
				LastUpdateAt: lastUpdateAt,
			}
		}
		snapshot.LanguageServers = append(snapshot.LanguageServers, status)
	}

	if file.Updater != nil {
		state, err := domain.ParseAutoUpdateState(file.Updater.Status)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode updater: %w", err)
		}
		snapshot.Updater = &state
	}

	snapshot.Tasks = slices.Clone(file.Tasks)
	return snapshot, nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last_update_at %q: %w", raw, err)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
