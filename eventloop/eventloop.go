// Package eventloop runs the single cooperative loop that owns every
// window, tab, and the frame clock. Nothing outside this package ever
// mutates a Grid or a window's geometry; everything else communicates by
// posting onto the Loop's channel, the same MPSC shape ptyhost.Host and
// config.Watch already use.
package eventloop

import (
	"time"

	"github.com/oriterm/oriterm/config"
	"github.com/oriterm/oriterm/tabs"
)

// FrameBudget is the target interval between coalesced redraws (spec.md
// §5's ~8ms pacing window), independent of the display's actual refresh
// rate — the loop redraws at most this often even under a PTY output
// flood.
const FrameBudget = 8 * time.Millisecond

// WindowHost is whatever owns one OS window's tab strip and can be asked
// to redraw or resize; eventloop depends only on this interface so it
// never imports the window or render packages directly, avoiding an
// import cycle (window owns a tabs.Manager and will, in turn, be driven by
// this loop through the same interface).
type WindowHost interface {
	Tabs() *tabs.Manager
	RequestRedraw()
	Closed() bool
}

// Loop is the cooperative event loop. Create one with New, register
// windows with AddWindow, then call Run from the main goroutine.
type Loop struct {
	Events chan interface{}

	windows map[int]WindowHost
	nextWin int

	blinkOn       bool
	blinkInterval time.Duration

	onOutput func(tabID tabs.ID, bytes []byte)
	onExited func(tabID tabs.ID, err error)
	onReload func()
	onBlink  func(on bool)
	onPoll   func()

	quit chan struct{}
}

// PollInterval is how often onPoll fires. It exists so the OS windowing
// toolkit's event queue (which must be pumped from the same thread that
// created the window) can be serviced from inside this same select loop
// instead of a second goroutine racing the rest of this package's
// event-loop-only mutation rule.
const PollInterval = 4 * time.Millisecond

// New builds a Loop with the given channel capacity. A modest buffer lets
// bursty PTY output coalesce into fewer redraws without blocking the
// reader goroutines that feed it.
func New(bufferSize int) *Loop {
	return &Loop{
		Events:        make(chan interface{}, bufferSize),
		windows:       make(map[int]WindowHost),
		blinkInterval: 600 * time.Millisecond,
	}
}

// AddWindow registers a window host and returns its ID for later removal.
func (l *Loop) AddWindow(w WindowHost) int {
	id := l.nextWin
	l.nextWin++
	l.windows[id] = w
	return id
}

// RemoveWindow drops a closed window from the loop's registry.
func (l *Loop) RemoveWindow(id int) { delete(l.windows, id) }

// WindowCount reports how many windows are still registered; the loop
// exits once this reaches zero (spec.md §5's "close last window" policy).
func (l *Loop) WindowCount() int { return len(l.windows) }

// OnOutput registers the callback invoked for every tabs.Output event.
func (l *Loop) OnOutput(fn func(tabID tabs.ID, bytes []byte)) { l.onOutput = fn }

// OnExited registers the callback invoked for every tabs.Exited event.
func (l *Loop) OnExited(fn func(tabID tabs.ID, err error)) { l.onExited = fn }

// OnReload registers the callback invoked for every config.ReloadEvent.
func (l *Loop) OnReload(fn func()) { l.onReload = fn }

// OnBlink registers the callback invoked on every cursor-blink tick; on
// is the new visibility phase.
func (l *Loop) OnBlink(fn func(on bool)) { l.onBlink = fn }

// OnPoll registers the callback invoked on every PollInterval tick. The
// windowing toolkit's PollEvents and the actual GPU draw call belong here:
// calling them from this same goroutine keeps window/input/grid mutation
// single-threaded without a second goroutine racing Run's callbacks.
func (l *Loop) OnPoll(fn func()) { l.onPoll = fn }

// SetBlinkInterval overrides the blink period from config at startup or
// reload.
func (l *Loop) SetBlinkInterval(d time.Duration) {
	if d > 0 {
		l.blinkInterval = d
	}
}

// Stop requests the loop exit at its next iteration.
func (l *Loop) Stop() {
	if l.quit == nil {
		return
	}
	close(l.quit)
	l.quit = nil
}

// Run drains Events, dispatching each payload to its registered callback,
// coalescing PTY output into at most one redraw request per window per
// FrameBudget, and firing the blink timer on its own cadence. It returns
// once every window has closed or Stop is called.
func (l *Loop) Run() {
	l.quit = make(chan struct{})

	frameTicker := time.NewTicker(FrameBudget)
	defer frameTicker.Stop()
	blinkTicker := time.NewTicker(l.blinkInterval)
	defer blinkTicker.Stop()
	pollTicker := time.NewTicker(PollInterval)
	defer pollTicker.Stop()

	dirty := make(map[int]bool)

	for {
		if len(l.windows) == 0 {
			return
		}
		select {
		case <-l.quit:
			return
		case <-pollTicker.C:
			if l.onPoll != nil {
				l.onPoll()
			}
		case ev := <-l.Events:
			switch e := ev.(type) {
			case tabs.Output:
				if l.onOutput != nil {
					l.onOutput(e.TabID, e.Bytes)
				}
				l.markAllDirty(dirty)
			case tabs.Exited:
				if l.onExited != nil {
					l.onExited(e.TabID, e.Err)
				}
				l.markAllDirty(dirty)
			case config.ReloadEvent:
				if l.onReload != nil {
					l.onReload()
				}
			}
		case <-frameTicker.C:
			l.flushDirty(dirty)
		case <-blinkTicker.C:
			l.blinkOn = !l.blinkOn
			if l.onBlink != nil {
				l.onBlink(l.blinkOn)
			}
			l.markAllDirty(dirty)
		}
		l.pruneClosedWindows()
	}
}

func (l *Loop) markAllDirty(dirty map[int]bool) {
	for id := range l.windows {
		dirty[id] = true
	}
}

func (l *Loop) flushDirty(dirty map[int]bool) {
	for id, isDirty := range dirty {
		if !isDirty {
			continue
		}
		if w, ok := l.windows[id]; ok {
			w.RequestRedraw()
		}
		delete(dirty, id)
	}
}

func (l *Loop) pruneClosedWindows() {
	for id, w := range l.windows {
		if w.Closed() {
			delete(l.windows, id)
		}
	}
}
