// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist/internal/session"
)

// DefaultTickInterval is the redraw interval used when none is configured.
const DefaultTickInterval = 250 * time.Millisecond

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	tickInterval time.Duration
	copyText     func(string) error
}

// WithTickInterval sets how often the view is refreshed without input.
func WithTickInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(copyText func(string) error) TUIOption {
	return func(c *tuiConfig) {
		if copyText != nil {
			c.copyText = copyText
		}
	}
}

// ErrNoTTY is returned by RunTUI when stdout is not a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// RunTUI runs the interactive board until the user quits or ctx is done.
// Signals are not handled here: the caller cancels ctx. The caller also
// checks Session.Saved afterwards, since a failed or skipped save leaves the
// session unsaved.
func RunTUI(ctx context.Context, sess *session.Session, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNoTTY
	}

	model := newTUIModel(sess, opts...)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)
	_, err := program.Run()
	return err
}

type tuiModel struct {
	sess     *session.Session
	view     session.View
	keys     keyMap
	help     help.Model
	input    textinput.Model
	cfg      tuiConfig
	status   string
	showHelp bool
	width    int
	height   int
	quitErr  error
}

type tickMsg time.Time

type statusMsg string

func newTUIModel(sess *session.Session, opts ...TUIOption) *tuiModel {
	cfg := tuiConfig{
		tickInterval: DefaultTickInterval,
		copyText:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Placeholder = "what needs doing?"
	input.Prompt = "> "

	return &tuiModel{
		sess:  sess,
		view:  sess.OnTick(),
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: input,
		cfg:   cfg,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tickCmd(m.cfg.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.view = m.sess.OnTick()
		return m, tickCmd(m.cfg.tickInterval)
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.KeyMsg:
		if m.view.Composing {
			return m.updateComposing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *tuiModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		m.dispatch(session.Command{Kind: session.MoveNext})
	case key.Matches(msg, m.keys.Previous):
		m.dispatch(session.Command{Kind: session.MovePrevious})
	case key.Matches(msg, m.keys.Add):
		m.dispatch(session.Command{Kind: session.BeginAddItem})
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Complete):
		m.dispatch(session.Command{Kind: session.CompleteSelected})
	case key.Matches(msg, m.keys.Remove):
		m.dispatch(session.Command{Kind: session.RemoveSelected})
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *tuiModel) updateComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Commit):
		m.dispatch(session.Commit(m.input.Value()))
		if !m.view.Composing {
			m.input.Reset()
			m.input.Blur()
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.dispatch(session.Command{Kind: session.CancelAddItem})
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch forwards a non-quit command. Ignored commands are not errors.
func (m *tuiModel) dispatch(cmd session.Command) {
	m.view, _ = m.sess.Dispatch(cmd)
	m.status = ""
}

func (m *tuiModel) quit() (tea.Model, tea.Cmd) {
	m.view, m.quitErr = m.sess.Dispatch(session.Command{Kind: session.Quit})
	return m, tea.Quit
}

func (m *tuiModel) copySelected() tea.Cmd {
	task, ok := m.view.SelectedTask()
	if !ok {
		return nil
	}
	copyText := m.cfg.copyText
	return func() tea.Msg {
		if err := copyText(task); err != nil {
			return statusMsg("copy failed: " + err.Error())
		}
		return statusMsg("copied: " + task)
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
