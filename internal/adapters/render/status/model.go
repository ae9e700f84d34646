package status

import (
	"errors"
	"io"

	"github.com/bnema/activity-indicator/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	content domain.Content
	opts    RenderOptions
	styles  styles
	output  string
}

func newModel(content domain.Content, opts RenderOptions) model {
	return model{
		content: content,
		opts:    opts,
		styles:  opts.styles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderLine(m.content, "", m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render returns content as one status line.
func Render(content domain.Content, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(content, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
