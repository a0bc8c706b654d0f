package eventloop

import (
	"testing"
	"time"

	"github.com/oriterm/oriterm/config"
	"github.com/oriterm/oriterm/tabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	redraws int
	closed  bool
}

func (f *fakeWindow) Tabs() *tabs.Manager { return nil }
func (f *fakeWindow) RequestRedraw()      { f.redraws++ }
func (f *fakeWindow) Closed() bool        { return f.closed }

func TestRunExitsWhenNoWindowsRegistered(t *testing.T) {
	l := New(8)
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not exit with zero windows")
	}
}

func TestOutputEventInvokesCallbackAndRedraws(t *testing.T) {
	l := New(8)
	w := &fakeWindow{}
	l.AddWindow(w)

	var gotID tabs.ID
	var gotBytes []byte
	l.OnOutput(func(id tabs.ID, b []byte) { gotID = id; gotBytes = b })

	go l.Run()
	l.Events <- tabs.Output{TabID: 7, Bytes: []byte("hi")}

	require.Eventually(t, func() bool { return gotID == 7 }, time.Second, time.Millisecond)
	assert.Equal(t, []byte("hi"), gotBytes)
	require.Eventually(t, func() bool { return w.redraws > 0 }, time.Second, time.Millisecond)
	l.Stop()
}

func TestReloadEventInvokesCallback(t *testing.T) {
	l := New(8)
	w := &fakeWindow{}
	l.AddWindow(w)

	reloaded := make(chan struct{}, 1)
	l.OnReload(func() { reloaded <- struct{}{} })

	go l.Run()
	l.Events <- config.ReloadEvent{}

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("reload callback never fired")
	}
	l.Stop()
}

func TestStopEndsRun(t *testing.T) {
	l := New(8)
	l.AddWindow(&fakeWindow{})

	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	l.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not end Run")
	}
}

func TestOnPollFiresRepeatedlyWhileRunning(t *testing.T) {
	l := New(8)
	l.AddWindow(&fakeWindow{})

	polls := make(chan struct{}, 8)
	l.OnPoll(func() {
		select {
		case polls <- struct{}{}:
		default:
		}
	})

	go l.Run()
	require.Eventually(t, func() bool { return len(polls) > 0 }, time.Second, time.Millisecond)
	l.Stop()
}

func TestClosedWindowPruned(t *testing.T) {
	l := New(8)
	w := &fakeWindow{}
	id := l.AddWindow(w)
	assert.Equal(t, 1, l.WindowCount())

	w.closed = true
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit after its only window closed")
	}
	l.RemoveWindow(id)
	assert.Equal(t, 0, l.WindowCount())
}
