package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/i18n"
)

var (
	extractInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	extractErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// extractState holds extraction state
type extractState struct {
	mu     sync.RWMutex
	done   bool
	err    error
	result *extractor.Info
}

func (s *extractState) setDone(result *extractor.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.result = result
}

func (s *extractState) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.done = true
}

func (s *extractState) get() (bool, error, *extractor.Info) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done, s.err, s.result
}

type extractTickMsg time.Time

type extractModel struct {
	spinner spinner.Model
	t       *i18n.Translations
	url     string
	state   *extractState
	cancel  context.CancelFunc
}

func newExtractModel(url, lang string, state *extractState, cancel context.CancelFunc) extractModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return extractModel{
		spinner: s,
		t:       i18n.T(lang),
		url:     url,
		state:   state,
		cancel:  cancel,
	}
}

func extractTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return extractTickMsg(t)
	})
}

func (m extractModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, extractTickCmd())
}

func (m extractModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case extractTickMsg:
		done, _, _ := m.state.get()
		if done {
			return m, tea.Quit
		}
		return m, extractTickCmd()
	}

	return m, nil
}

func (m extractModel) View() string {
	done, err, _ := m.state.get()

	if err != nil {
		return fmt.Sprintf("  %s %s\n", extractErrStyle.Render("✗"), m.t.Errors.Generic)
	}
	if done {
		return ""
	}

	return fmt.Sprintf("\n  %s %s: %s\n\n",
		m.spinner.View(),
		m.t.Formats.Extracting,
		extractInfoStyle.Render(m.url),
	)
}

// runExtractWithSpinner runs extraction with a spinner TUI
func runExtractWithSpinner(ctx context.Context, ext extractor.Extractor, url, lang string) (*extractor.Info, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := &extractState{}

	// Start extraction in background
	go func() {
		result, err := ext.Extract(ctx, url)
		if err != nil {
			state.setError(err)
		} else {
			state.setDone(result)
		}
	}()

	model := newExtractModel(url, lang, state, cancel)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return nil, err
	}

	done, extractErr, result := state.get()
	if extractErr != nil {
		return nil, extractErr
	}
	if !done {
		return nil, fmt.Errorf("extraction cancelled")
	}

	return result, nil
}
