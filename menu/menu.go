// Package menu implements the settings overlay's theme-picker: a small
// modal list the renderer draws on its overlay pipeline. Grounded on the
// teacher's menu.Menu state machine (State/SelectedIndex/Items navigation
// over a much larger settings tree covering shells, aliases, and init
// scripts), narrowed here to the theme list spec.md's config/palette
// surface actually needs.
package menu

import "github.com/oriterm/oriterm/config"

// State is the picker's open/closed phase.
type State int

const (
	Closed State = iota
	Open
)

// Item is one selectable theme row.
type Item struct {
	Name  string
	Label string
}

// Menu is the theme-picker's navigation state.
type Menu struct {
	state    State
	items    []Item
	selected int

	// OnSelect is invoked with the chosen theme's name when the user
	// confirms a selection; nil is a no-op, allowed so tests can drive
	// navigation without wiring a callback.
	OnSelect func(name string)
}

// New builds a picker listing every configured theme option, starting
// closed.
func New() *Menu {
	m := &Menu{state: Closed}
	m.Reload()
	return m
}

// Reload repopulates the item list from config.ThemeOptions, preserving
// the current selection index where possible — called after a config
// reload in case the theme set changed.
func (m *Menu) Reload() {
	opts := config.ThemeOptions()
	m.items = make([]Item, len(opts))
	for i, o := range opts {
		m.items[i] = Item{Name: o.Name, Label: o.Label}
	}
	if m.selected >= len(m.items) {
		m.selected = 0
	}
}

// Toggle opens the picker if closed, or closes it if open.
func (m *Menu) Toggle() {
	if m.state == Open {
		m.Close()
	} else {
		m.OpenAt(m.selected)
	}
}

// OpenAt opens the picker with the given index pre-selected (clamped).
func (m *Menu) OpenAt(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(m.items) && len(m.items) > 0 {
		index = len(m.items) - 1
	}
	m.selected = index
	m.state = Open
}

// Close dismisses the picker without changing the theme.
func (m *Menu) Close() { m.state = Closed }

// IsOpen reports whether the picker is currently showing.
func (m *Menu) IsOpen() bool { return m.state == Open }

// MoveUp / MoveDown move the highlighted row, clamping at the ends rather
// than wrapping — a picker this short doesn't benefit from wraparound and
// clamping avoids an accidental double-press landing back where it
// started.
func (m *Menu) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

func (m *Menu) MoveDown() {
	if m.selected < len(m.items)-1 {
		m.selected++
	}
}

// Selected returns the currently highlighted item and true, or the zero
// value and false if the list is empty.
func (m *Menu) Selected() (Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return Item{}, false
	}
	return m.items[m.selected], true
}

// SelectedIndex exposes the highlighted row for the renderer.
func (m *Menu) SelectedIndex() int { return m.selected }

// Items returns the full picker list for the renderer to draw.
func (m *Menu) Items() []Item { return m.items }

// Confirm fires OnSelect for the highlighted item and closes the picker.
func (m *Menu) Confirm() {
	if item, ok := m.Selected(); ok && m.OnSelect != nil {
		m.OnSelect(item.Name)
	}
	m.Close()
}
