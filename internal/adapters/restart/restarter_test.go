package restart

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestartWithoutCommandPrintsRequest(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	restarter := NewCommandRestarter(nil, &out)

	require.NoError(t, restarter.Restart(context.Background()))
	assert.Equal(t, "Restart requested to apply the downloaded update.\n", out.String())
}

func TestRestartRunsConfiguredCommand(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs []string
	restarter := NewCommandRestarter([]string{"systemctl", "--user", "restart", "editor"}, &bytes.Buffer{})
	restarter.run = func(_ context.Context, name string, args ...string) (string, error) {
		gotName = name
		gotArgs = args
		return "", nil
	}

	require.NoError(t, restarter.Restart(context.Background()))
	assert.Equal(t, "systemctl", gotName)
	assert.Equal(t, []string{"--user", "restart", "editor"}, gotArgs)
}

func TestRestartIncludesStderrInError(t *testing.T) {
	t.Parallel()

	restarter := NewCommandRestarter([]string{"editor-restart"}, &bytes.Buffer{})
	restarter.run = func(context.Context, string, ...string) (string, error) {
		return "permission denied", errors.New("exit status 1")
	}

	err := restarter.Restart(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "run editor-restart: exit status 1: permission denied")
}

func TestRestartMissingBinaryIsUnavailable(t *testing.T) {
	t.Parallel()

	restarter := NewCommandRestarter([]string{"actind-no-such-binary-xyz"}, &bytes.Buffer{})

	err := restarter.Restart(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRestartCopiesCommand(t *testing.T) {
	t.Parallel()

	command := []string{"a", "b"}
	restarter := NewCommandRestarter(command, &bytes.Buffer{})
	command[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, restarter.command)
}
