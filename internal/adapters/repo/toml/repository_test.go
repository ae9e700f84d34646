package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	config := viper.New()
	config.Set(StatePathKey, statePath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo, statePath
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	message := "Loading packages"
	percentage := 42
	errored := domain.AutoUpdateErrored
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	snapshot := domain.Snapshot{
		Providers: []domain.StatusRecord{
			{Name: "Python", Status: domain.Downloading()},
			{Name: "Rust", Status: domain.Failed("checksum mismatch")},
		},
		LanguageServers: []domain.LanguageServerStatus{
			{Name: "gopls", PendingWork: map[string]domain.Progress{
				"index": {Message: &message, Percentage: &percentage, LastUpdateAt: now},
				"load":  {LastUpdateAt: now.Add(time.Second)},
			}},
			{Name: "idle-server"},
		},
		Updater: &errored,
		Tasks:   []string{"Indexing files", "Formatting"},
	}

	require.NoError(t, repo.Save(context.Background(), snapshot))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestRepositoryLoadMissingFileReturnsEmptySnapshot(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Snapshot{}, got)
}

func TestRepositoryOmitsDetachedUpdater(t *testing.T) {
	t.Parallel()

	repo, statePath := newTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{Tasks: []string{"Formatting"}}))

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "[updater]")

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.Updater)
}

func TestRepositoryReadsHandWrittenState(t *testing.T) {
	t.Parallel()

	repo, statePath := newTestRepository(t)
	require.NoError(t, os.WriteFile(statePath, []byte(strings.Join([]string{
		"version = 1",
		"tasks = [\"Indexing files\"]",
		"",
		"[[providers]]",
		"name = \"Go\"",
		"status = \"Cached\"",
		"error = \"ignored for non-failed statuses\"",
		"",
		"[[language_servers]]",
		"name = \"rust-analyzer\"",
		"",
		"[[language_servers.progress]]",
		"token = \"build\"",
		"percentage = 10",
		"last_update_at = \"2026-03-01T09:00:00Z\"",
		"",
		"[updater]",
		"status = \"idle\"",
	}, "\n")), 0o600))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Providers, 1)
	assert.Equal(t, domain.StatusRecord{Name: "Go", Status: domain.Cached()}, got.Providers[0])
	require.Len(t, got.LanguageServers, 1)
	progress := got.LanguageServers[0].PendingWork["build"]
	require.NotNil(t, progress.Percentage)
	assert.Equal(t, 10, *progress.Percentage)
	assert.Nil(t, progress.Message)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), progress.LastUpdateAt)
	require.NotNil(t, got.Updater)
	assert.Equal(t, domain.AutoUpdateIdle, *got.Updater)
	assert.Equal(t, []string{"Indexing files"}, got.Tasks)
}

func TestRepositoryRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "install status",
			content: "version = 1\n[[providers]]\nname = \"Go\"\nstatus = \"exploded\"\n",
			wantErr: domain.ErrUnknownInstallStatus,
		},
		{
			name:    "updater state",
			content: "version = 1\n[updater]\nstatus = \"sleeping\"\n",
			wantErr: domain.ErrUnknownAutoUpdateState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, statePath := newTestRepository(t)
			require.NoError(t, os.WriteFile(statePath, []byte(tc.content), 0o600))

			_, err := repo.Load(context.Background())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRepositoryRejectsMalformedProgress(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "percentage above range",
			content: "version = 1\n[[language_servers]]\nname = \"gopls\"\n[[language_servers.progress]]\ntoken = \"index\"\npercentage = 150\n",
			wantErr: `decode progress "index" of "gopls"`,
		},
		{
			name:    "negative percentage",
			content: "version = 1\n[[language_servers]]\nname = \"gopls\"\n[[language_servers.progress]]\ntoken = \"index\"\npercentage = -1\n",
			wantErr: "percentage must be between 0 and 100",
		},
		{
			name:    "last update time",
			content: "version = 1\n[[language_servers]]\nname = \"gopls\"\n[[language_servers.progress]]\ntoken = \"index\"\nlast_update_at = \"yesterday\"\n",
			wantErr: `parse last_update_at "yesterday"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, statePath := newTestRepository(t)
			require.NoError(t, os.WriteFile(statePath, []byte(tc.content), 0o600))

			_, err := repo.Load(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	repo, statePath := newTestRepository(t)
	require.NoError(t, os.WriteFile(statePath, []byte("version = 1\n[[language_servers]]\nname = \"gopls\"\n[[language_servers.progress]]\ntoken = \"index\"\npercentage = 150\n"), 0o600))
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidPercentage)
}

func TestRepositoryRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	repo, statePath := newTestRepository(t)
	require.NoError(t, os.WriteFile(statePath, []byte("version = 99\n"), 0o600))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported state schema version 99")
}

func TestRepositoryWritesPrivateFileAtomically(t *testing.T) {
	t.Parallel()

	repo, statePath := newTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{Tasks: []string{"Formatting"}}))

	info, err := os.Stat(statePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(stateFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(statePath))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.toml", entries[0].Name())
}

func TestRepositoryConcurrentSavesKeepValidFile(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Save(context.Background(), domain.Snapshot{Tasks: []string{"task"}}))
		}()
	}
	wg.Wait()

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"task"}, got.Tasks)
}

func TestRepositoryHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Save(ctx, domain.Snapshot{}), context.Canceled)
}

func TestNewRepositoryDefaultsToHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	repo, err := NewRepository(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "actind", "state.toml"), repo.Path())
}
