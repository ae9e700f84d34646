package restart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/bnema/activity-indicator/internal/ports"
)

var ErrUnavailable = errors.New("restart command unavailable")

type runFunc func(ctx context.Context, name string, args ...string) (stderr string, err error)

// CommandRestarter runs the configured restart command. Without a command it
// prints a restart request to out instead.
type CommandRestarter struct {
	command []string
	out     io.Writer
	run     runFunc
}

var _ ports.Restarter = (*CommandRestarter)(nil)

func NewCommandRestarter(command []string, out io.Writer) *CommandRestarter {
	return &CommandRestarter{
		command: append([]string(nil), command...),
		out:     out,
		run:     runCommand,
	}
}

func (r *CommandRestarter) Restart(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(r.command) == 0 {
		if _, err := fmt.Fprintln(r.out, "Restart requested to apply the downloaded update."); err != nil {
			return fmt.Errorf("write restart request: %w", err)
		}
		return nil
	}

	stderr, err := r.run(ctx, r.command[0], r.command[1:]...)
	if err != nil {
		if stderr == "" {
			return fmt.Errorf("run %s: %w", r.command[0], err)
		}
		return fmt.Errorf("run %s: %w: %s", r.command[0], err, stderr)
	}

	return nil
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrUnavailable
		}
		return "", fmt.Errorf("locate %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}
