package search

import (
	"testing"

	"github.com/oriterm/oriterm/grid"
	"github.com/oriterm/oriterm/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLine(g *grid.Grid, s string) {
	for _, r := range s {
		g.PutChar(r)
	}
}

func TestRunFindsCaseFoldedMatches(t *testing.T) {
	g := grid.New(20, 3)
	writeLine(g, "Hello HELLO hello")
	src := selection.GridSource{G: g}

	s := Run(src, "hello")
	require.Len(t, s.Matches, 3)
	assert.Equal(t, 0, s.Focus)
}

func TestRunEmptyQueryYieldsNoMatches(t *testing.T) {
	g := grid.New(10, 3)
	src := selection.GridSource{G: g}
	s := Run(src, "")
	assert.Empty(t, s.Matches)
	assert.Equal(t, -1, s.Focus)
}

func TestNextWrapsAround(t *testing.T) {
	g := grid.New(20, 3)
	writeLine(g, "ab ab ab")
	src := selection.GridSource{G: g}
	s := Run(src, "ab")
	require.Len(t, s.Matches, 3)

	s.Focus = 2
	s.Next()
	assert.Equal(t, 0, s.Focus)
}

func TestPrevWrapsAround(t *testing.T) {
	g := grid.New(20, 3)
	writeLine(g, "ab ab")
	src := selection.GridSource{G: g}
	s := Run(src, "ab")
	require.Len(t, s.Matches, 2)

	s.Focus = 0
	s.Prev()
	assert.Equal(t, 1, s.Focus)
}

func TestFocusedReturnsFalseWhenNoMatches(t *testing.T) {
	s := State{Focus: -1}
	_, ok := s.Focused()
	assert.False(t, ok)
}

func TestMatchSpansScrollback(t *testing.T) {
	g := grid.New(10, 2)
	writeLine(g, "needle")
	g.CarriageReturn()
	g.Newline()
	writeLine(g, "filler")
	g.CarriageReturn()
	g.Newline() // pushes "needle" row into scrollback
	writeLine(g, "more")
	src := selection.GridSource{G: g}

	s := Run(src, "needle")
	require.Len(t, s.Matches, 1)
	assert.Equal(t, 0, s.Matches[0].Row)
}

func TestViewportAdjustCentersFocusedMatch(t *testing.T) {
	g := grid.New(10, 5)
	src := selection.GridSource{G: g}
	m := Match{Row: 0}
	delta := ViewportAdjust(src, m, 5, 0)
	assert.GreaterOrEqual(t, delta, 0)
}
