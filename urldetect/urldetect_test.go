package urldetect

import (
	"errors"
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

func TestScanDetectsHTTPURL(t *testing.T) {
	g := grid.New(40, 3)
	writeLine(g, "see https://example.com/path for more")
	src := selection.GridSource{G: g}
	var c Cache

	matches := c.Scan(src, g.Generation())
	require.Len(t, matches, 1)
	assert.Equal(t, "https://example.com/path", matches[0].URL)
}

func TestScanTrimsSurroundingPunctuation(t *testing.T) {
	g := grid.New(40, 3)
	writeLine(g, "(see http://example.com).")
	src := selection.GridSource{G: g}
	var c Cache

	matches := c.Scan(src, g.Generation())
	require.Len(t, matches, 1)
	assert.Equal(t, "http://example.com", matches[0].URL)
}

func TestScanIgnoresBareWordWithoutScheme(t *testing.T) {
	g := grid.New(40, 3)
	writeLine(g, "not a url here")
	src := selection.GridSource{G: g}
	var c Cache

	matches := c.Scan(src, g.Generation())
	assert.Empty(t, matches)
}

func TestCacheReusesResultForUnchangedGeneration(t *testing.T) {
	g := grid.New(40, 3)
	writeLine(g, "http://example.com")
	src := selection.GridSource{G: g}
	var c Cache

	first := c.Scan(src, g.Generation())
	second := c.Scan(src, g.Generation())
	require.Len(t, first, 1)
	assert.Same(t, &first[0], &second[0])
}

func TestCacheRescansOnGenerationChange(t *testing.T) {
	g := grid.New(40, 3)
	writeLine(g, "http://first.example")
	src := selection.GridSource{G: g}
	var c Cache
	c.Scan(src, g.Generation())

	g.CarriageReturn()
	g.Newline()
	writeLine(g, "http://second.example")
	matches := c.Scan(src, g.Generation())
	assert.Len(t, matches, 2)
}

func TestAtFindsMatchCoveringCell(t *testing.T) {
	matches := []Match{{URL: "http://x", Segments: []Segment{{Row: 0, StartCol: 5, EndCol: 13}}}}
	m, ok := At(matches, 0, 7)
	require.True(t, ok)
	assert.Equal(t, "http://x", m.URL)

	_, ok = At(matches, 0, 20)
	assert.False(t, ok)
}

func TestOpenRejectsUnsafeScheme(t *testing.T) {
	err := Open("javascript:alert(1)", func(string) error { return nil })
	var unsafe *UnsafeSchemeError
	require.True(t, errors.As(err, &unsafe))
}

func TestOpenInvokesOpenerForSafeScheme(t *testing.T) {
	called := ""
	err := Open("https://example.com", func(target string) error {
		called = target
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", called)
}

func TestUpdateHoverReflectsPointerPosition(t *testing.T) {
	matches := []Match{{URL: "http://x", Segments: []Segment{{Row: 2, StartCol: 0, EndCol: 8}}}}
	h := UpdateHover(matches, 2, 3)
	assert.True(t, h.Active)
	h = UpdateHover(matches, 5, 3)
	assert.False(t, h.Active)
}
