package review

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

const (
	reviewDirMode  = 0o700
	reviewFileMode = 0o600
)

// WriterSink prints each error report to an io.Writer followed by a blank line.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.ErrorSink = (*WriterSink)(nil)

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) ShowError(ctx context.Context, report domain.ErrorReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s\n\n", report.Text()); err != nil {
		return fmt.Errorf("write error report for %s: %w", report.ProviderName, err)
	}
	return nil
}

// DirSink stores each error report in its own owner-only file under root.
type DirSink struct {
	root  string
	newID func() string
	mu    sync.Mutex
}

var _ ports.ErrorSink = (*DirSink)(nil)

func NewDirSink(root string) *DirSink {
	return &DirSink{
		root:  filepath.Clean(root),
		newID: func() string { return uuid.NewString() },
	}
}

func (s *DirSink) Root() string {
	return s.root
}

func (s *DirSink) ShowError(ctx context.Context, report domain.ErrorReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.root, fileName(report.ProviderName, s.newID()))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, reviewDirMode); err != nil {
		return fmt.Errorf("create review directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(report.Text()+"\n"), reviewFileMode); err != nil {
		return fmt.Errorf("write error report for %s: %w", report.ProviderName, err)
	}

	return nil
}

func fileName(provider string, id string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(provider) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := b.String()
	if name == "" {
		name = "provider"
	}
	return name + "-" + id + ".txt"
}
