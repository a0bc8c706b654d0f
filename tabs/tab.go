// Package tabs owns the per-tab lifecycle: a Grid, its protocol Session,
// and its PTY Host, wired together the way the teacher's tab.TabManager
// wires a parser.Terminal to a shell.PtySession — but reworked around the
// cooperative event loop's single-writer rule (spec.md §5) instead of the
// teacher's per-tab reader goroutine mutating shared state directly. The
// reader goroutine here only ever posts Output/Exited onto a shared
// channel; all grid/session mutation happens back on the event-loop
// goroutine when that channel is drained.
package tabs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oriterm/oriterm/grid"
	"github.com/oriterm/oriterm/palette"
	"github.com/oriterm/oriterm/ptyhost"
	"github.com/oriterm/oriterm/vtparser"
)

// ID identifies a tab for the lifetime of the process. IDs are never
// reused even after a tab closes, matching the teacher's monotonic
// nextID counter.
type ID uint64

var nextID atomic.Uint64

func newID() ID { return ID(nextID.Add(1)) }

// Notification is a queued OSC 9/99/777 desktop notification awaiting
// display, timestamped so the UI can expire stale ones.
type Notification struct {
	Kind string
	Text string
	At   time.Time
}

// PromptMarker is the most recent OSC 133 semantic prompt marker seen on
// this tab: Kind is one of 'A' (prompt start), 'B' (command start), 'C'
// (command output start), or 'D' (command finished, Params carries the
// exit code).
type PromptMarker struct {
	Kind   byte
	Params string
}

// Tab is one terminal session: its own Grid, protocol Session, and PTY
// Host, plus the UI-facing state the teacher's TabManager tracked only by
// index (title, bell badge, CWD, pending notifications).
type Tab struct {
	id   ID
	Grid *grid.Grid
	Sess *vtparser.Session
	Host *ptyhost.Host

	mu            sync.Mutex
	exited        bool
	exitErr       error
	dirty         bool
	bellAt        time.Time
	notifications []Notification
	prompt        PromptMarker
}

// Options configures Spawn.
type Options struct {
	Shell  string
	Dir    string
	Cols   int
	Rows   int
	Scheme string

	// ClipboardOSC52 gates OSC 52 clipboard read/write (config's
	// behavior.clipboard_osc52, off by default per DESIGN.md's Open
	// Question decision). Clipboard is only ever consulted when this is
	// true.
	ClipboardOSC52 bool
	// Clipboard backs OSC 52: set=false reads the current clipboard
	// contents (the return value), set=true writes payload to it. Required
	// when ClipboardOSC52 is true.
	Clipboard func(selection string, set bool, payload string) string
}

// Spawn creates a tab's grid/palette/handler/session, then starts its PTY
// host. events is the single MPSC channel the event loop drains; Output
// and Exited values posted on it carry this tab's ID so the loop can route
// them without a registry lookup on the hot path.
func Spawn(ctx context.Context, opts Options, events chan<- interface{}) (*Tab, error) {
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	g := grid.New(cols, rows)
	pal := palette.FromScheme(opts.Scheme)

	t := &Tab{id: newID(), Grid: g}

	h := vtparser.NewHandler(g, pal, &hostWriter{t: t})
	h.OnBell = func() { t.markBell() }
	h.OnCWDChange = func(cwd string) { h.CWD = cwd }
	h.OnNotification = func(kind, text string) { t.pushNotification(kind, text) }
	h.OnPromptMarker = func(kind byte, params string) { t.setPromptMarker(kind, params) }
	if opts.ClipboardOSC52 && opts.Clipboard != nil {
		h.OnClipboard = opts.Clipboard
	}
	t.Sess = vtparser.NewSession(h)

	tabEvents := make(chan interface{})
	go t.forward(tabEvents, events)

	host, err := ptyhost.Spawn(ctx, ptyhost.Options{
		Shell: opts.Shell,
		Dir:   opts.Dir,
		Cols:  cols,
		Rows:  rows,
	}, tabEvents)
	if err != nil {
		close(tabEvents)
		return nil, fmt.Errorf("tabs: spawn %d: %w", t.id, err)
	}
	t.Host = host
	return t, nil
}

// forward relabels each event from this tab's private channel with its ID
// and republishes it on the shared event-loop channel, so Host and Session
// code stays ignorant of tab identity entirely.
func (t *Tab) forward(in <-chan interface{}, out chan<- interface{}) {
	for ev := range in {
		switch e := ev.(type) {
		case ptyhost.Output:
			out <- Output{TabID: t.id, Bytes: e.Bytes}
		case ptyhost.Exited:
			out <- Exited{TabID: t.id, Err: e.Err}
			return
		default:
			out <- ev
		}
	}
}

// Output is the tab-tagged form of ptyhost.Output posted onto the shared
// event-loop channel.
type Output struct {
	TabID ID
	Bytes []byte
}

// Exited is the tab-tagged form of ptyhost.Exited.
type Exited struct {
	TabID ID
	Err   error
}

// ID returns the tab's identity.
func (t *Tab) ID() ID { return t.id }

// Deliver feeds one Output payload through the tab's session and marks the
// tab dirty for the next frame. Only the event-loop goroutine calls this.
func (t *Tab) Deliver(data []byte) {
	t.Sess.Write(data)
	t.mu.Lock()
	t.dirty = true
	t.mu.Unlock()
}

// TakeDirty reports and clears whether the tab has unrendered output,
// implementing the frame-coalescing rule: a tab that produced ten bursts of
// output between frames still redraws exactly once.
func (t *Tab) TakeDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.dirty
	t.dirty = false
	return d
}

// MarkExited records that the child process has terminated.
func (t *Tab) MarkExited(err error) {
	t.mu.Lock()
	t.exited = true
	t.exitErr = err
	t.mu.Unlock()
}

// HasExited reports whether the shell has exited.
func (t *Tab) HasExited() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exited
}

// ExitErr returns the error the PTY reader observed at EOF, if any.
func (t *Tab) ExitErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exitErr
}

func (t *Tab) markBell() {
	t.mu.Lock()
	t.bellAt = time.Now()
	t.mu.Unlock()
}

// BellAt returns the timestamp of the most recent bell, or the zero time
// if none has rung, for the tab-bar badge.
func (t *Tab) BellAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bellAt
}

// AckBell clears the bell badge once the user has viewed the tab.
func (t *Tab) AckBell() {
	t.mu.Lock()
	t.bellAt = time.Time{}
	t.mu.Unlock()
}

func (t *Tab) pushNotification(kind, text string) {
	t.mu.Lock()
	t.notifications = append(t.notifications, Notification{Kind: kind, Text: text, At: time.Now()})
	if len(t.notifications) > 32 {
		t.notifications = t.notifications[1:]
	}
	t.mu.Unlock()
}

// TakeNotifications drains and returns all pending notifications.
func (t *Tab) TakeNotifications() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.notifications
	t.notifications = nil
	return out
}

func (t *Tab) setPromptMarker(kind byte, params string) {
	t.mu.Lock()
	t.prompt = PromptMarker{Kind: kind, Params: params}
	t.mu.Unlock()
}

// PromptMarker returns the most recent OSC 133 marker this tab has seen,
// for shell-integration features like jump-to-previous-prompt.
func (t *Tab) PromptMarker() PromptMarker {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prompt
}

// Title returns the tab's current window/tab title.
func (t *Tab) Title() string { return t.Sess.Handler.Title }

// CWD returns the last directory OSC 7 reported, or "" if none arrived.
func (t *Tab) CWD() string { return t.Sess.Handler.CWD }

// Write sends input (keystrokes, paste, query responses) to the child.
func (t *Tab) Write(p []byte) (int, error) { return t.Host.Write(p) }

// Resize propagates a new size to both the grid (with reflow) and the PTY.
func (t *Tab) Resize(cols, rows int, reflow bool) error {
	t.Grid.Resize(cols, rows, reflow)
	return t.Host.Resize(cols, rows)
}

// Kill terminates the child without waiting, per the fast-exit policy.
func (t *Tab) Kill() error { return t.Host.Kill() }

// Close releases the tab's PTY master.
func (t *Tab) Close() error { return t.Host.Close() }

// VisibleText returns the current viewport's plain text, used by search
// and the clipboard's "copy visible screen" action.
func (t *Tab) VisibleText() string { return t.Grid.VisibleText() }

// hostWriter adapts Tab.Write to the io.Writer vtparser.NewHandler wants
// for query responses, without exposing ptyhost.Host directly to vtparser.
type hostWriter struct{ t *Tab }

func (w *hostWriter) Write(p []byte) (int, error) {
	if w.t.Host == nil {
		return len(p), nil
	}
	return w.t.Host.Write(p)
}
