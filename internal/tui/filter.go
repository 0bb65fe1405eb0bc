package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// listFilter narrows an in-memory list by name as the user types.
// The trending and watchlist views share it; browse filters through the
// query engine instead.
type listFilter[T any] struct {
	items   []T
	visible []T // nil when no filter is applied
	active  bool
	input   textinput.Model
	cursor  int
	nameOf  func(T) string
	idOf    func(T) int
}

type filterOutcome int

const (
	filterTyping filterOutcome = iota
	filterChosen
	filterCancelled
)

func newListFilter[T any](nameOf func(T) string, idOf func(T) int) listFilter[T] {
	return listFilter[T]{nameOf: nameOf, idOf: idOf, input: newFilterInput()}
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 30
	return ti
}

// setItems replaces the backing list and reapplies any filter text.
func (f *listFilter[T]) setItems(items []T) {
	f.items = items
	if f.visible != nil || f.active {
		f.apply()
	}
	f.clampCursor()
}

func (f *listFilter[T]) start() tea.Cmd {
	f.active = true
	f.input.SetValue("")
	f.input.Focus()
	f.apply()
	f.cursor = 0
	return textinput.Blink
}

func (f *listFilter[T]) cancel() {
	f.active = false
	f.visible = nil
	f.input.SetValue("")
	f.input.Blur()
	f.cursor = 0
}

func (f *listFilter[T]) rows() []T {
	if f.visible != nil || f.active {
		return f.visible
	}
	return f.items
}

// selected returns the id under the cursor.
func (f *listFilter[T]) selected() (int, bool) {
	rows := f.rows()
	if f.cursor < 0 || f.cursor >= len(rows) {
		return 0, false
	}
	return f.idOf(rows[f.cursor]), true
}

func (f *listFilter[T]) up() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *listFilter[T]) down() {
	if f.cursor < len(f.rows())-1 {
		f.cursor++
	}
}

func (f *listFilter[T]) clampCursor() {
	if n := len(f.rows()); f.cursor >= n {
		f.cursor = max(0, n-1)
	}
}

func (f *listFilter[T]) apply() {
	needle := strings.ToLower(strings.TrimSpace(f.input.Value()))
	f.visible = make([]T, 0, len(f.items))
	for _, item := range f.items {
		if needle == "" || strings.Contains(strings.ToLower(f.nameOf(item)), needle) {
			f.visible = append(f.visible, item)
		}
	}
	f.clampCursor()
}

// update feeds a message to the filter input. Enter keeps the narrowed list
// and leaves typing mode; Escape drops the filter entirely.
func (f *listFilter[T]) update(msg tea.Msg, keys KeyMap) (filterOutcome, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			f.cancel()
			return filterCancelled, nil
		case key.Matches(km, keys.Enter):
			f.active = false
			f.input.Blur()
			return filterChosen, nil
		case km.Type == tea.KeyUp:
			f.up()
			return filterTyping, nil
		case km.Type == tea.KeyDown:
			f.down()
			return filterTyping, nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.apply()
	return filterTyping, cmd
}
