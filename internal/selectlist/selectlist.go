// Package selectlist provides an ordered list with a single optional cursor.
package selectlist

import (
	"errors"
	"strconv"
)

var (
	// ErrEmpty is returned when an operation needs at least one item.
	ErrEmpty = errors.New("list is empty")
	// ErrNoSelection is returned when an operation needs a selected item.
	ErrNoSelection = errors.New("no item selected")
	// ErrOutOfRange is returned by Select for an index outside the list.
	ErrOutOfRange = errors.New("index out of range")
)

// Selection is either an index into a list or none.
// The zero value is None.
type Selection struct {
	index int
	ok    bool
}

// At returns a selection of index i.
func At(i int) Selection {
	return Selection{index: i, ok: true}
}

// None returns the empty selection.
func None() Selection {
	return Selection{}
}

// Index returns the selected index and whether a selection exists.
func (s Selection) Index() (int, bool) {
	return s.index, s.ok
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return !s.ok
}

func (s Selection) String() string {
	if !s.ok {
		return "none"
	}
	return "at(" + strconv.Itoa(s.index) + ")"
}

// List is an order-preserving sequence with at most one selected item.
// The selection, when present, always indexes a live item.
type List[T any] struct {
	items    []T
	selected Selection
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// WithItems returns a list holding a copy of items, with nothing selected.
func WithItems[T any](items []T) *List[T] {
	l := &List[T]{items: make([]T, len(items))}
	copy(l.items, items)
	return l
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the items in order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the item at index i.
func (l *List[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Selected returns the current selection.
func (l *List[T]) Selected() Selection {
	return l.selected
}

// SelectedItem returns the selected item, if any.
func (l *List[T]) SelectedItem() (T, bool) {
	i, ok := l.selected.Index()
	if !ok {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Select moves the cursor to index i.
func (l *List[T]) Select(i int) error {
	if len(l.items) == 0 {
		return ErrEmpty
	}
	if i < 0 || i >= len(l.items) {
		return ErrOutOfRange
	}
	l.selected = At(i)
	return nil
}

// Unselect clears the selection.
func (l *List[T]) Unselect() {
	l.selected = None()
}

// Append adds item to the end without moving the cursor.
func (l *List[T]) Append(item T) {
	l.items = append(l.items, item)
}

// Next advances the cursor, wrapping from the last item to the first.
// With nothing selected it selects the first item.
func (l *List[T]) Next() error {
	n := len(l.items)
	if n == 0 {
		return ErrEmpty
	}
	i, ok := l.selected.Index()
	if !ok {
		l.selected = At(0)
		return nil
	}
	l.selected = At((i + 1) % n)
	return nil
}

// Previous moves the cursor back, wrapping from the first item to the last.
// With nothing selected it selects the first item.
func (l *List[T]) Previous() error {
	n := len(l.items)
	if n == 0 {
		return ErrEmpty
	}
	i, ok := l.selected.Index()
	if !ok {
		l.selected = At(0)
		return nil
	}
	if i == 0 {
		l.selected = At(n - 1)
		return nil
	}
	l.selected = At(i - 1)
	return nil
}

// RemoveSelected deletes the selected item and returns it.
// Afterwards the first item is selected, or nothing if the list is empty.
func (l *List[T]) RemoveSelected() (T, error) {
	var zero T
	if len(l.items) == 0 {
		return zero, ErrEmpty
	}
	i, ok := l.selected.Index()
	if !ok {
		return zero, ErrNoSelection
	}

	removed := l.items[i]
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]

	if len(l.items) == 0 {
		l.selected = None()
	} else {
		l.selected = At(0)
	}
	return removed, nil
}
