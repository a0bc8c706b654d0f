package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRowAllBlank(t *testing.T) {
	r := NewRow(5, Cell{})
	assert.Len(t, r.Cells, 5)
	assert.Equal(t, 0, r.Occupied)
	for _, c := range r.Cells {
		assert.Equal(t, ' ', c.Char)
	}
}

func TestRowSetExtendsOccupied(t *testing.T) {
	r := NewRow(5, Cell{})
	r.Set(2, Cell{Char: 'x'})
	assert.Equal(t, 3, r.Occupied)
	r.Set(0, Cell{Char: 'y'})
	assert.Equal(t, 3, r.Occupied)
}

func TestRowCloneDeepCopiesCombining(t *testing.T) {
	r := NewRow(2, Cell{})
	r.Cells[0].AddCombining(0x0301)
	clone := r.Clone()
	*clone.Cells[0].Combining = append(*clone.Cells[0].Combining, 0x0302)
	require.Len(t, *r.Cells[0].Combining, 1)
	require.Len(t, *clone.Cells[0].Combining, 2)
}

func TestRowResizeGrowsAndShrinks(t *testing.T) {
	r := NewRow(3, Cell{})
	r.Set(2, Cell{Char: 'z'})

	grown := r.Resize(5, Cell{})
	assert.Len(t, grown.Cells, 5)
	assert.Equal(t, 'z', grown.Cells[2].Char)
	assert.Equal(t, ' ', grown.Cells[4].Char)
	assert.Equal(t, 3, grown.Occupied)

	shrunk := r.Resize(1, Cell{})
	assert.Len(t, shrunk.Cells, 1)
	assert.Equal(t, 1, shrunk.Occupied)
}

func TestRowResizeSameWidthIsNoop(t *testing.T) {
	r := NewRow(3, Cell{})
	same := r.Resize(3, Cell{})
	assert.Equal(t, &r.Cells[0], &same.Cells[0])
}

func TestRowReset(t *testing.T) {
	r := NewRow(3, Cell{})
	r.Set(1, Cell{Char: 'a'})
	r.Reset(Cell{})
	assert.Equal(t, 0, r.Occupied)
	for _, c := range r.Cells {
		assert.Equal(t, ' ', c.Char)
	}
}

func TestRowHasWrap(t *testing.T) {
	r := NewRow(3, Cell{})
	assert.False(t, r.HasWrap())
	r.Cells[2].Flags |= WrapLine
	assert.True(t, r.HasWrap())

	empty := Row{}
	assert.False(t, empty.HasWrap())
}
