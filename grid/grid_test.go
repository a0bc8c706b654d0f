package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriterm/oriterm/cell"
)

func writeString(g *Grid, s string) {
	for _, r := range s {
		g.PutChar(r)
	}
}

func TestHelloCarriageReturnOverwrite(t *testing.T) {
	g := New(10, 3)
	writeString(g, "hello")
	g.CarriageReturn()
	writeString(g, "world")
	row := g.Row(0)
	require.NotNil(t, row)
	assert.Equal(t, "world", rowText(*row))
}

func TestWideCharSpacerInvariant(t *testing.T) {
	g := New(10, 3)
	g.PutChar('你')
	row := g.Row(0)
	require.NotNil(t, row)
	assert.True(t, row.Cells[0].IsWide())
	assert.True(t, row.Cells[1].IsSpacer())
	assert.Equal(t, 2, g.Cursor().Col)
}

func TestWideCharWrapsAtLastColumn(t *testing.T) {
	g := New(3, 2)
	writeString(g, "ab")
	g.PutChar('你')
	// Last column couldn't hold a wide glyph: it gets blanked and wraps.
	row0 := g.Row(0)
	row1 := g.Row(1)
	require.NotNil(t, row0)
	require.NotNil(t, row1)
	assert.True(t, row0.Cells[2].Char == ' ')
	assert.True(t, row1.Cells[0].IsWide())
}

func TestCursorClampsToBounds(t *testing.T) {
	g := New(5, 5)
	g.Goto(100, 100)
	c := g.Cursor()
	assert.Equal(t, 4, c.Row)
	assert.Equal(t, 4, c.Col)
	g.Goto(-5, -5)
	c = g.Cursor()
	assert.Equal(t, 0, c.Row)
	assert.Equal(t, 0, c.Col)
}

func TestScrollbackCap(t *testing.T) {
	g := New(5, 2)
	g.SetMaxScrollback(3)
	for i := 0; i < 10; i++ {
		g.Newline()
	}
	assert.LessOrEqual(t, g.ScrollbackLen(), 3)
}

func TestScrollUpPushesScrollbackAndFillsBCE(t *testing.T) {
	g := New(5, 3)
	tmpl := cell.Cell{Bg: cell.RGB(1, 2, 3)}
	g.SetTemplate(tmpl)
	writeString(g, "a")
	before := g.ScrollbackLen()
	g.ScrollUp(1)
	assert.Equal(t, before+1, g.ScrollbackLen())
	last := g.Row(g.Lines - 1)
	require.NotNil(t, last)
	assert.Equal(t, tmpl.Bg, last.Cells[0].Bg)
}

func TestScrollRegionConfinesScroll(t *testing.T) {
	g := New(5, 5)
	g.SetScrollRegion(1, 3)
	g.Goto(0, 0)
	g.PutChar('X')
	g.Goto(3, 0)
	g.Newline()
	top := g.Row(0)
	require.NotNil(t, top)
	// row 0 is outside the scroll region and must be untouched.
	assert.Equal(t, 'X', top.Cells[0].Char)
}

func TestEraseDisplaySavedClearsScrollback(t *testing.T) {
	g := New(5, 2)
	for i := 0; i < 5; i++ {
		g.Newline()
	}
	require.Greater(t, g.ScrollbackLen(), 0)
	g.EraseDisplay(EraseSaved)
	assert.Equal(t, 0, g.ScrollbackLen())
	assert.Equal(t, 0, g.DisplayOffset())
}

func TestAltScreenSaveRestore(t *testing.T) {
	g := New(5, 2)
	writeString(g, "abc")
	g.SaveCursor()
	g.SwapToAlt(true)
	assert.True(t, g.IsAlt())
	alt := g.Row(0)
	require.NotNil(t, alt)
	assert.Equal(t, ' ', alt.Cells[0].Char)
	g.SwapToPrimary()
	assert.False(t, g.IsAlt())
	primary := g.Row(0)
	require.NotNil(t, primary)
	assert.Equal(t, 'a', primary.Cells[0].Char)
	g.RestoreCursor()
	assert.Equal(t, 3, g.Cursor().Col)
}

func TestResizeColumnsPreservesWidthOnGrowBack(t *testing.T) {
	g := New(10, 2)
	writeString(g, "0123456789")
	g.Resize(5, 2, false)
	g.Resize(10, 2, false)
	row := g.Row(0)
	require.NotNil(t, row)
	assert.Equal(t, "01234", rowText(*row)[:5])
}

func TestResizeShrinkLinesPushesScrollback(t *testing.T) {
	g := New(5, 5)
	for i := 0; i < 5; i++ {
		writeString(g, "x")
		g.Newline()
	}
	before := g.ScrollbackLen()
	g.Resize(5, 2, false)
	assert.GreaterOrEqual(t, g.ScrollbackLen(), before)
	assert.Equal(t, 2, g.Lines)
}

func TestInsertDeleteChars(t *testing.T) {
	g := New(5, 1)
	writeString(g, "abcde")
	g.Goto(0, 1)
	g.DeleteChars(2)
	row := g.Row(0)
	require.NotNil(t, row)
	assert.Equal(t, "ade", rowText(*row))

	g2 := New(5, 1)
	writeString(g2, "abc")
	g2.Goto(0, 1)
	g2.InsertBlank(2)
	row2 := g2.Row(0)
	require.NotNil(t, row2)
	assert.Equal(t, "a  bc", rowText(*row2))
}

func TestInsertDeleteLines(t *testing.T) {
	g := New(5, 3)
	g.Goto(0, 0)
	g.PutChar('1')
	g.Goto(1, 0)
	g.PutChar('2')
	g.Goto(2, 0)
	g.PutChar('3')
	g.Goto(1, 0)
	g.DeleteLines(1)
	row1 := g.Row(1)
	require.NotNil(t, row1)
	assert.Equal(t, "3", rowText(*row1))
}

func TestTabStops(t *testing.T) {
	g := New(20, 1)
	g.AdvanceTab(1)
	assert.Equal(t, 8, g.Cursor().Col)
	g.AdvanceTab(1)
	assert.Equal(t, 16, g.Cursor().Col)
	g.BackwardTab(1)
	assert.Equal(t, 8, g.Cursor().Col)
}

func TestScrollRegionBenchmarkShapedTable(t *testing.T) {
	cases := []struct {
		name        string
		cols, lines int
		regionTop   int
		regionBot   int
		scrolls     int
		wantTop     int
		wantBot     int
	}{
		{"full-screen-80x24", 80, 24, 0, 23, 30, 0, 23},
		{"small-region-10x5", 10, 5, 1, 3, 10, 1, 3},
		// A region with top == bottom is rejected; the full screen stays.
		{"single-line-region", 40, 10, 4, 4, 5, 0, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(tc.cols, tc.lines)
			g.SetScrollRegion(tc.regionTop, tc.regionBot)
			for i := 0; i < tc.scrolls; i++ {
				g.ScrollUp(1)
			}
			top, bottom := g.ScrollRegion()
			assert.Equal(t, tc.wantTop, top)
			assert.Equal(t, tc.wantBot, bottom)
		})
	}
}
