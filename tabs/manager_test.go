package tabs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnEcho(t *testing.T, m *Manager) *Tab {
	t.Helper()
	tab, err := m.NewTab(context.Background())
	require.NoError(t, err)
	return tab
}

func newTestManager() (*Manager, chan interface{}) {
	events := make(chan interface{}, 64)
	return NewManager(events, Options{Shell: "/bin/sh", Cols: 80, Rows: 24}), events
}

func TestNewManagerStartsEmpty(t *testing.T) {
	m, _ := newTestManager()
	assert.True(t, m.Empty())
	assert.Nil(t, m.Active())
}

func TestNewTabBecomesActive(t *testing.T) {
	m, _ := newTestManager()
	tab := spawnEcho(t, m)
	defer tab.Kill()

	assert.Equal(t, tab, m.Active())
	assert.Equal(t, 1, m.Count())
}

func TestCloseActiveRemovesTab(t *testing.T) {
	m, _ := newTestManager()
	a := spawnEcho(t, m)
	b := spawnEcho(t, m)
	defer a.Close()
	defer b.Close()

	assert.Equal(t, b, m.Active())
	m.CloseActive()
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, a, m.Active())
}

func TestNextPrevTabWraps(t *testing.T) {
	m, _ := newTestManager()
	a := spawnEcho(t, m)
	b := spawnEcho(t, m)
	defer a.Close()
	defer b.Close()

	m.Activate(0)
	m.NextTab()
	assert.Equal(t, 1, m.ActiveIndex())
	m.NextTab()
	assert.Equal(t, 0, m.ActiveIndex())
	m.PrevTab()
	assert.Equal(t, 1, m.ActiveIndex())
}

func TestMaxTabsEnforced(t *testing.T) {
	m, _ := newTestManager()
	for i := 0; i < MaxTabs; i++ {
		tab := spawnEcho(t, m)
		defer tab.Close()
	}
	_, err := m.NewTab(context.Background())
	assert.Error(t, err)
}

func TestDetachAttachMovesTabAcrossManagers(t *testing.T) {
	src, events := newTestManager()
	dst := NewManager(events, Options{Shell: "/bin/sh", Cols: 80, Rows: 24})

	tab := spawnEcho(t, src)
	defer tab.Close()
	id := tab.ID()

	detached := src.Detach(id)
	require.NotNil(t, detached)
	assert.True(t, src.Empty())

	dst.Attach(detached, 0)
	assert.Equal(t, detached, dst.Active())
	assert.Equal(t, tab, dst.ByID(id))
}

func TestDeliverMarksDirtyAndWritesGrid(t *testing.T) {
	m, _ := newTestManager()
	tab := spawnEcho(t, m)
	defer tab.Close()

	tab.Deliver([]byte("hi"))
	assert.True(t, tab.TakeDirty())
	assert.False(t, tab.TakeDirty())
}

func TestCleanupExitedDropsDeadTabs(t *testing.T) {
	m, _ := newTestManager()
	tab := spawnEcho(t, m)
	tab.MarkExited(nil)

	removed := m.CleanupExited()
	require.Len(t, removed, 1)
	assert.True(t, m.Empty())
}

func TestForwardTagsEventsWithTabID(t *testing.T) {
	m, events := newTestManager()
	tab := spawnEcho(t, m)
	defer tab.Close()

	_, err := tab.Write([]byte("echo hi\n"))
	require.NoError(t, err)

	select {
	case ev := <-events:
		out, ok := ev.(Output)
		require.True(t, ok, "expected tabs.Output, got %T", ev)
		assert.Equal(t, tab.ID(), out.TabID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tagged output event")
	}
}
