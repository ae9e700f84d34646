package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestResolveWithoutStatePrintsNothing(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestProviderSetThenResolveShowsDownload(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "provider", "set", "gopls", "downloading")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "provider", "set", "rust-analyzer", "downloading")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Contains(t, stdout, "↓")
	assert.Contains(t, stdout, "Downloading gopls, rust-analyzer language servers...")
}

func TestProviderSetValidatesStatusAndError(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "provider", "set", "gopls", "exploded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown install status")

	_, _, err = executeCLI(t, home, "provider", "set", "gopls", "failed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --error")

	_, _, err = executeCLI(t, home, "provider", "set", "gopls", "cached", "--error", "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--error only applies")
}

func TestClickShowsErrorsAndDrainsFailures(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "provider", "set", "gopls", "failed", "--error", "boom")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "provider", "set", "pyright", "failed", "--error", "no node")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Failed to download gopls, pyright language servers. Click to show error.")
	assert.Contains(t, stdout, "(click to show errors)")

	stdout, stderr, err := executeCLI(t, home, "click")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t,
		"Language server error: gopls\n\nboom\n\nLanguage server error: pyright\n\nno node\n\n",
		stderr)

	stdout, _, err = executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestClickJSONIncludesReports(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "provider", "set", "gopls", "failed", "--error", "boom")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "task", "push", "Indexing", "workspace")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "click", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var out struct {
		Clicked struct {
			Action string `json:"action"`
		} `json:"clicked"`
		Content struct {
			Message string `json:"message"`
		} `json:"content"`
		Reports []struct {
			Provider string `json:"provider"`
			Error    string `json:"error"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "show_errors", out.Clicked.Action)
	assert.Equal(t, "Indexing workspace", out.Content.Message)
	require.Len(t, out.Reports, 1)
	assert.Equal(t, "gopls", out.Reports[0].Provider)
	assert.Equal(t, "boom", out.Reports[0].Error)
}

func TestClickWithoutActionReportsNothingToDo(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "task", "push", "Building")
	require.NoError(t, err)

	stdout, stderr, err := executeCLI(t, home, "click")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Nothing to click")
	assert.Equal(t, "Building\n", stdout)
}

func TestResolveJSONShowsPendingWork(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "progress", "set", "rust-analyzer", "indexing", "--message", "Indexing", "--percentage", "40")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "progress", "set", "gopls", "load")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "resolve", "--json")
	require.NoError(t, err)

	var content map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &content))
	assert.Equal(t, "gopls: load + 1 more", content["message"])
	assert.NotContains(t, content, "icon")

	_, _, err = executeCLI(t, home, "progress", "clear", "gopls")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Equal(t, "rust-analyzer: Indexing (40%)\n", stdout)
}

func TestProgressSetRejectsInvalidPercentage(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "progress", "set", "gopls", "load", "--percentage", "140")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "percentage must be between 0 and 100")
}

func TestUpdaterErrorIsDismissedByClick(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "updater", "set", "errored")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "task", "push", "Building")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Auto update failed (click to dismiss)")

	_, _, err = executeCLI(t, home, "click")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Empty(t, stdout, "an attached idle updater hides tasks")

	_, _, err = executeCLI(t, home, "updater", "detach")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Equal(t, "Building\n", stdout)
}

func TestIdleFallsThroughFromEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ACTIND_RESOLVER_IDLE_FALLS_THROUGH", "true")

	_, _, err := executeCLI(t, home, "updater", "set", "idle")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "task", "push", "Building")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Equal(t, "Building\n", stdout)
}

func TestUpdatedClickPrintsRestartRequest(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "updater", "set", "updated")
	require.NoError(t, err)

	_, stderr, err := executeCLI(t, home, "click")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Restart requested")
}

func TestTaskPushAndPop(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "task", "push", "Building")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "task", "push", "Testing")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "resolve")
	require.NoError(t, err)
	assert.Equal(t, "Testing\n", stdout)

	_, _, err = executeCLI(t, home, "task", "pop", "Building")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "task", "pop")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "task", "pop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active tasks")
}

func TestStateFlagOverridesDefaultPath(t *testing.T) {
	home := t.TempDir()
	statePath := filepath.Join(t.TempDir(), "custom", "state.toml")

	_, _, err := executeCLI(t, home, "--state", statePath, "task", "push", "Building")
	require.NoError(t, err)

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Building")

	_, err = os.Stat(filepath.Join(home, ".config", "actind", "state.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestReviewDirFromConfigFile(t *testing.T) {
	home := t.TempDir()
	reviewDir := filepath.Join(t.TempDir(), "reviews")
	require.NoError(t, writeConfigFixture(home, "[review]\ndir = \""+filepath.ToSlash(reviewDir)+"\"\n"))

	_, _, err := executeCLI(t, home, "provider", "set", "gopls", "failed", "--error", "boom")
	require.NoError(t, err)

	_, stderr, err := executeCLI(t, home, "click")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	entries, err := os.ReadDir(reviewDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "gopls-")
}

func TestWatchPlainPrintsEachChange(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "task", "push", "Building")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := newRootCmd()
	stdout := &syncBuffer{}
	root.SetOut(stdout)
	root.SetErr(&syncBuffer{})
	root.SetArgs([]string{"watch", "--plain"})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return bytes.Contains(stdout.Bytes(), []byte("Building\n"))
	}, 3*time.Second, 20*time.Millisecond)

	_, _, err = executeCLI(t, home, "provider", "set", "gopls", "downloading")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return bytes.Contains(stdout.Bytes(), []byte("Downloading gopls language server..."))
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFixture(home string, body string) error {
	configDir := filepath.Join(home, ".config", "actind")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(body), 0o644)
}
