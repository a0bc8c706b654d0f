package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuStartsClosedWithItems(t *testing.T) {
	m := New()
	assert.False(t, m.IsOpen())
	assert.NotEmpty(t, m.Items())
}

func TestToggleOpensAndCloses(t *testing.T) {
	m := New()
	m.Toggle()
	assert.True(t, m.IsOpen())
	m.Toggle()
	assert.False(t, m.IsOpen())
}

func TestMoveDownClampsAtEnd(t *testing.T) {
	m := New()
	n := len(m.Items())
	require.Greater(t, n, 0)
	for i := 0; i < n+5; i++ {
		m.MoveDown()
	}
	assert.Equal(t, n-1, m.SelectedIndex())
}

func TestMoveUpClampsAtStart(t *testing.T) {
	m := New()
	m.MoveUp()
	m.MoveUp()
	assert.Equal(t, 0, m.SelectedIndex())
}

func TestConfirmInvokesOnSelectAndCloses(t *testing.T) {
	m := New()
	m.OpenAt(0)
	var chosen string
	m.OnSelect = func(name string) { chosen = name }

	item, ok := m.Selected()
	require.True(t, ok)

	m.Confirm()
	assert.Equal(t, item.Name, chosen)
	assert.False(t, m.IsOpen())
}

func TestReloadClampsSelectionWithinBounds(t *testing.T) {
	m := New()
	m.selected = 1000
	m.Reload()
	assert.Less(t, m.SelectedIndex(), len(m.Items())+1)
}
