package tabs

import (
	"context"
	"fmt"
)

// MaxTabs bounds a single window's tab strip, matching the teacher's fixed
// MaxTabs cap rather than letting the tab bar grow unboundedly.
const MaxTabs = 32

// Manager owns one window's tab strip: creation order, the active tab, and
// cleanup of exited children. It holds no locks — like Tab, it is only
// ever touched from the event-loop goroutine.
type Manager struct {
	tabs   []*Tab
	active int
	events chan<- interface{}
	opts   Options
}

// NewManager builds a manager that spawns tabs against the shared
// event-loop channel, with defOpts as the template for shell/size/scheme
// on every subsequent NewTab call.
func NewManager(events chan<- interface{}, defOpts Options) *Manager {
	return &Manager{events: events, opts: defOpts, active: -1}
}

// SetClipboard wires the OSC 52 clipboard backend into every tab spawned
// from this point on. Needed because the clipboard implementation depends
// on the OS window, which is created after the manager itself.
func (m *Manager) SetClipboard(enabled bool, fn func(selection string, set bool, payload string) string) {
	m.opts.ClipboardOSC52 = enabled
	m.opts.Clipboard = fn
}

// NewTab spawns and appends a tab, making it active, unless the strip is
// already at MaxTabs.
func (m *Manager) NewTab(ctx context.Context) (*Tab, error) {
	if len(m.tabs) >= MaxTabs {
		return nil, fmt.Errorf("tabs: at capacity (%d)", MaxTabs)
	}
	t, err := Spawn(ctx, m.opts, m.events)
	if err != nil {
		return nil, err
	}
	m.tabs = append(m.tabs, t)
	m.active = len(m.tabs) - 1
	return t, nil
}

// CloseActive kills and removes the active tab. Closing the last tab leaves
// the strip empty, which the app treats as the signal to close the whole
// window (see Manager.Empty).
func (m *Manager) CloseActive() {
	if m.active < 0 || m.active >= len(m.tabs) {
		return
	}
	m.closeAt(m.active)
}

// CloseID closes a specific tab by ID, used when a close-button click or a
// tab-bar context menu targets a tab other than the active one.
func (m *Manager) CloseID(id ID) {
	for i, t := range m.tabs {
		if t.ID() == id {
			m.closeAt(i)
			return
		}
	}
}

func (m *Manager) closeAt(i int) {
	t := m.tabs[i]
	t.Kill()
	t.Close()
	m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
	if m.active >= len(m.tabs) {
		m.active = len(m.tabs) - 1
	}
}

// Empty reports whether every tab has been closed, the window-close
// trigger.
func (m *Manager) Empty() bool { return len(m.tabs) == 0 }

// NextTab / PrevTab cycle the active index, wrapping around.
func (m *Manager) NextTab() {
	if len(m.tabs) > 1 {
		m.active = (m.active + 1) % len(m.tabs)
	}
}

func (m *Manager) PrevTab() {
	if len(m.tabs) > 1 {
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
	}
}

// Activate switches to the tab at index i; an out-of-range index is ignored.
func (m *Manager) Activate(i int) {
	if i < 0 || i >= len(m.tabs) {
		return
	}
	m.active = i
}

// ActivateID switches to the tab with the given ID, if present.
func (m *Manager) ActivateID(id ID) bool {
	for i, t := range m.tabs {
		if t.ID() == id {
			m.active = i
			return true
		}
	}
	return false
}

// Active returns the currently focused tab, or nil if the strip is empty.
func (m *Manager) Active() *Tab {
	if m.active < 0 || m.active >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.active]
}

// ActiveIndex returns the active tab's position in the strip.
func (m *Manager) ActiveIndex() int { return m.active }

// ByID looks up a tab by ID without changing which is active.
func (m *Manager) ByID(id ID) *Tab {
	for _, t := range m.tabs {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// All returns the tab strip in display order, for the tab bar and for
// ResizeAll/CleanupExited.
func (m *Manager) All() []*Tab {
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Count returns the number of open tabs.
func (m *Manager) Count() int { return len(m.tabs) }

// ResizeAll propagates a window resize to every tab's grid and PTY, and
// updates the template size new tabs spawn at.
func (m *Manager) ResizeAll(cols, rows int, reflow bool) {
	m.opts.Cols, m.opts.Rows = cols, rows
	for _, t := range m.tabs {
		t.Resize(cols, rows, reflow)
	}
}

// CleanupExited drops any tab whose child has terminated, closing its PTY
// master first. Returns the removed tabs so the caller can react (e.g. log
// the exit code, or close the window if this empties the strip).
func (m *Manager) CleanupExited() []*Tab {
	var removed []*Tab
	kept := m.tabs[:0]
	for _, t := range m.tabs {
		if t.HasExited() {
			t.Close()
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	m.tabs = kept
	if m.active >= len(m.tabs) {
		m.active = len(m.tabs) - 1
	}
	return removed
}

// Detach removes a tab from this manager without closing it — used by tab
// tear-off, which hands the Tab to a brand-new window's Manager via
// Attach rather than killing and respawning the shell.
func (m *Manager) Detach(id ID) *Tab {
	for i, t := range m.tabs {
		if t.ID() == id {
			m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
			if m.active >= len(m.tabs) {
				m.active = len(m.tabs) - 1
			}
			return t
		}
	}
	return nil
}

// Attach inserts an already-running tab (from another window's Detach) at
// position i and makes it active.
func (m *Manager) Attach(t *Tab, i int) {
	if i < 0 || i > len(m.tabs) {
		i = len(m.tabs)
	}
	m.tabs = append(m.tabs, nil)
	copy(m.tabs[i+1:], m.tabs[i:])
	m.tabs[i] = t
	m.active = i
}
