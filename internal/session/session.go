// Package session drives a task board from user commands and produces
// snapshots for rendering.
package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/board"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/selectlist"
)

var (
	// ErrComposing is returned for list commands while new task text is
	// being entered.
	ErrComposing = errors.New("composing a new task")
	// ErrNotComposing is returned for commit or cancel outside compose mode.
	ErrNotComposing = errors.New("not composing a new task")
	// ErrClosed is returned for commands after Quit.
	ErrClosed = errors.New("session closed")
	// ErrUnknownCommand is returned for a command kind Dispatch does not know.
	ErrUnknownCommand = errors.New("unknown command")
)

// Kind identifies a user command.
type Kind int

const (
	MoveNext Kind = iota + 1
	MovePrevious
	BeginAddItem
	CommitAddItem
	CancelAddItem
	CompleteSelected
	RemoveSelected
	Quit
)

func (k Kind) String() string {
	switch k {
	case MoveNext:
		return "move-next"
	case MovePrevious:
		return "move-previous"
	case BeginAddItem:
		return "begin-add"
	case CommitAddItem:
		return "commit-add"
	case CancelAddItem:
		return "cancel-add"
	case CompleteSelected:
		return "complete"
	case RemoveSelected:
		return "remove"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Command is a single user command. Text is used only by CommitAddItem.
type Command struct {
	Kind Kind
	Text string
}

// Commit returns a CommitAddItem command carrying text.
func Commit(text string) Command {
	return Command{Kind: CommitAddItem, Text: text}
}

// Saver persists the pending tasks.
type Saver interface {
	Save(items []string) error
}

// View is a read-only snapshot of everything the UI renders.
type View struct {
	Pending           []string
	PendingSelected   selectlist.Selection
	Completed         []string
	CompletedSelected selectlist.Selection
	Composing         bool
	Done              bool
	// Outcome is nil when the last command changed state, or the reason it
	// was ignored.
	Outcome error
}

// SelectedTask returns the text of the selected pending task.
func (v View) SelectedTask() (string, bool) {
	i, ok := v.PendingSelected.Index()
	if !ok || i >= len(v.Pending) {
		return "", false
	}
	return v.Pending[i], true
}

// Session owns a board for the lifetime of one interactive run.
type Session struct {
	board     *board.Board
	saver     Saver
	logger    *log.Logger
	composing bool
	done      bool
	saved     bool
	last      error
}

// New returns a session over b that saves through saver on Quit.
func New(b *board.Board, saver Saver, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		board:  b,
		saver:  saver,
		logger: logger,
	}
}

// Board returns the underlying board.
func (s *Session) Board() *board.Board {
	return s.board
}

// Done reports whether Quit has run.
func (s *Session) Done() bool {
	return s.done
}

// Saved reports whether Quit has saved the pending tasks.
func (s *Session) Saved() bool {
	return s.saved
}

// OnTick returns the current snapshot without changing anything.
func (s *Session) OnTick() View {
	return s.view()
}

// Dispatch applies cmd and returns the resulting snapshot. Commands that
// do not apply to the current state are recorded in View.Outcome and leave
// the state unchanged. The returned error is non-nil only when Quit fails
// to save.
func (s *Session) Dispatch(cmd Command) (View, error) {
	if cmd.Kind == Quit {
		err := s.Quit()
		return s.view(), err
	}
	s.last = s.apply(cmd)
	if s.last != nil {
		s.logger.Debug("command ignored", "command", cmd.Kind, "reason", s.last)
	}
	return s.view(), nil
}

func (s *Session) apply(cmd Command) error {
	if s.done {
		return ErrClosed
	}

	switch cmd.Kind {
	case CommitAddItem:
		if !s.composing {
			return ErrNotComposing
		}
		if err := s.board.AddTask(cmd.Text); err != nil {
			return err
		}
		s.composing = false
		s.logger.Debug("task added", "pending", s.board.Pending().Len())
		return nil
	case CancelAddItem:
		if !s.composing {
			return ErrNotComposing
		}
		s.composing = false
		return nil
	}

	if s.composing {
		return ErrComposing
	}

	switch cmd.Kind {
	case MoveNext:
		return s.board.Pending().Next()
	case MovePrevious:
		return s.board.Pending().Previous()
	case BeginAddItem:
		s.composing = true
		return nil
	case CompleteSelected:
		if _, err := s.board.CompleteSelected(); err != nil {
			return err
		}
		s.logger.Debug("task completed", "completed", s.board.Completed().Len())
		return nil
	case RemoveSelected:
		if _, err := s.board.RemoveSelected(); err != nil {
			return err
		}
		s.logger.Debug("task removed", "pending", s.board.Pending().Len())
		return nil
	default:
		return ErrUnknownCommand
	}
}

// Quit closes the session and saves the pending tasks. Completed tasks are
// not saved. After a failed save, calling Quit again retries it; once the
// save succeeds further calls do nothing.
func (s *Session) Quit() error {
	if s.saved {
		return nil
	}
	s.done = true
	s.composing = false

	items := s.board.PendingItems()
	if err := s.saver.Save(items); err != nil {
		s.last = err
		s.logger.Error("save failed", "err", err)
		return fmt.Errorf("save pending tasks: %w", err)
	}
	s.saved = true
	s.last = nil
	s.logger.Info("saved tasks", "pending", len(items), "completed_discarded", s.board.Completed().Len())
	return nil
}

func (s *Session) view() View {
	return View{
		Pending:           s.board.Pending().Items(),
		PendingSelected:   s.board.Pending().Selected(),
		Completed:         s.board.Completed().Items(),
		CompletedSelected: s.board.Completed().Selected(),
		Composing:         s.composing,
		Done:              s.done,
		Outcome:           s.last,
	}
}
