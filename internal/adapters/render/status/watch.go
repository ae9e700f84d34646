package status

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/activity-indicator/internal/domain"
	"github.com/bnema/activity-indicator/internal/ports"
)

// ContentMsg carries freshly resolved content into a running watch program.
type ContentMsg struct {
	Content domain.Content
}

type clickDoneMsg struct {
	err error
}

// WatchModel is the live status line. Enter or space clicks the current
// content; q quits.
type WatchModel struct {
	ctx      context.Context
	click    func(context.Context) error
	spinner  spinner.Model
	styles   styles
	opts     RenderOptions
	content  domain.Content
	spinning bool
	clicking bool
	err      error
}

func NewWatchModel(ctx context.Context, click func(context.Context) error, opts RenderOptions) WatchModel {
	s := opts.styles()
	return WatchModel{
		ctx:   ctx,
		click: click,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(s.spinner),
		),
		styles: s,
		opts:   opts,
	}
}

func (m WatchModel) Content() domain.Content {
	return m.content
}

func (m WatchModel) Err() error {
	return m.err
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", " ":
			if m.clicking || !m.content.Clickable() || m.click == nil {
				return m, nil
			}
			m.clicking = true
			m.err = nil
			click, ctx := m.click, m.ctx
			return m, func() tea.Msg {
				return clickDoneMsg{err: click(ctx)}
			}
		}
		return m, nil
	case ContentMsg:
		m.content = msg.Content
		if m.content.Icon == domain.IconDownload && !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil
	case spinner.TickMsg:
		if m.content.Icon != domain.IconDownload {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case clickDoneMsg:
		m.clicking = false
		m.err = msg.err
		return m, nil
	default:
		return m, nil
	}
}

func (m WatchModel) View() string {
	line := renderLine(m.content, m.glyph(), m.opts, m.styles)
	if line == "" {
		line = m.styles.empty.Render(idleText)
	}

	view := line + "\n"
	if m.err != nil {
		view += m.styles.err.Render("error: "+m.err.Error()) + "\n"
	}
	return view + m.styles.hint.Render("enter: click • q: quit") + "\n"
}

func (m WatchModel) glyph() string {
	if m.content.Icon != domain.IconDownload || !m.spinning {
		return ""
	}
	return m.spinner.View()
}

// ProgramHost forwards rendered content to a running watch program.
type ProgramHost struct {
	program *tea.Program
}

var _ ports.Host = (*ProgramHost)(nil)

func NewProgramHost(program *tea.Program) *ProgramHost {
	return &ProgramHost{program: program}
}

func (h *ProgramHost) Render(content domain.Content) {
	h.program.Send(ContentMsg{Content: content})
}

// LineHost writes one plain line per content change, for non-terminal output.
type LineHost struct {
	mu      sync.Mutex
	w       io.Writer
	opts    RenderOptions
	last    domain.Content
	written bool
}

var _ ports.Host = (*LineHost)(nil)

func NewLineHost(w io.Writer, opts RenderOptions) *LineHost {
	opts.Plain = true
	return &LineHost{w: w, opts: opts}
}

func (h *LineHost) Render(content domain.Content) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.written && h.last == content {
		return
	}
	h.last = content
	h.written = true

	_, _ = fmt.Fprintln(h.w, renderLine(content, "", h.opts, plainStyles()))
}
