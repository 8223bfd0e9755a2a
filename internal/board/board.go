// Package board tracks pending and completed tasks.
package board

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/nibzard/tasklist/internal/selectlist"
)

var (
	// ErrBlankTask is returned by AddTask for text that is empty after trimming.
	ErrBlankTask = errors.New("task text is blank")
	// ErrInvalidText is returned by AddTask for text that is not valid UTF-8,
	// which the store could not write back unchanged.
	ErrInvalidText = errors.New("task text is not valid UTF-8")
)

// Task is a single user-entered line of text.
type Task = string

// Option configures a Board.
type Option func(*Board)

// AllowBlank makes AddTask accept empty or whitespace-only text.
func AllowBlank(allow bool) Option {
	return func(b *Board) {
		b.allowBlank = allow
	}
}

// Board owns the pending and completed lists. A task lives in exactly
// one of them.
type Board struct {
	pending    *selectlist.List[Task]
	completed  *selectlist.List[Task]
	allowBlank bool
}

// New builds a board from the persisted pending tasks. The first pending
// task starts selected.
func New(pending []string, opts ...Option) *Board {
	b := &Board{
		pending:   selectlist.WithItems(pending),
		completed: selectlist.New[Task](),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.pending.Len() > 0 {
		_ = b.pending.Select(0)
	}
	return b
}

// Pending returns the pending list.
func (b *Board) Pending() *selectlist.List[Task] {
	return b.pending
}

// Completed returns the completed list. It is never persisted.
func (b *Board) Completed() *selectlist.List[Task] {
	return b.completed
}

// PendingItems returns the pending tasks in order, for persistence.
func (b *Board) PendingItems() []string {
	return b.pending.Items()
}

// AddTask appends text to the pending list.
func (b *Board) AddTask(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	if !b.allowBlank && strings.TrimSpace(text) == "" {
		return ErrBlankTask
	}
	b.pending.Append(text)
	return nil
}

// CompleteSelected moves the selected pending task to the end of the
// completed list and returns it.
func (b *Board) CompleteSelected() (Task, error) {
	task, err := b.pending.RemoveSelected()
	if err != nil {
		return "", err
	}
	b.completed.Append(task)
	return task, nil
}

// RemoveSelected permanently deletes the selected pending task.
func (b *Board) RemoveSelected() (Task, error) {
	return b.pending.RemoveSelected()
}
