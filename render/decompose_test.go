package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeGlyphRanges(t *testing.T) {
	_, ok := decomposeGlyph('a')
	assert.False(t, ok)

	rects, ok := decomposeGlyph(0x2500) // horizontal box line
	require.True(t, ok)
	assert.NotEmpty(t, rects)

	rects, ok = decomposeGlyph(0x2588) // full block
	require.True(t, ok)
	require.Len(t, rects, 1)
	assert.Equal(t, unitRect{0, 0, 1, 1}, rects[0])

	rects, ok = decomposeGlyph(0x2800) // braille blank (no dots set)
	require.True(t, ok)
	assert.Empty(t, rects)

	rects, ok = decomposeGlyph(0xE0B0) // powerline triangle
	require.True(t, ok)
	assert.NotEmpty(t, rects)
}

func TestBoxDrawingHorizontalVsHeavy(t *testing.T) {
	light := boxDrawing(0x2500)
	heavy := boxDrawing(0x2501)
	require.Len(t, light, 1)
	require.Len(t, heavy, 1)
	lightHeight := light[0].Y1 - light[0].Y0
	heavyHeight := heavy[0].Y1 - heavy[0].Y0
	assert.Greater(t, heavyHeight, lightHeight)
}

func TestBlockElementHalves(t *testing.T) {
	upper := blockElement(0x2580)
	require.Len(t, upper, 1)
	assert.Equal(t, unitRect{0, 0, 1, 0.5}, upper[0])

	lower := blockElement(0x2584)
	require.Len(t, lower, 1)
	assert.Equal(t, unitRect{0, 0.5, 1, 1}, lower[0])
}

func TestBlockElementEighthRamp(t *testing.T) {
	// 0x2581 is the shortest bottom-aligned eighth block.
	rects := blockElement(0x2581)
	require.Len(t, rects, 1)
	assert.InDelta(t, float32(7)/8, rects[0].Y0, 0.001)
	assert.Equal(t, float32(1), rects[0].Y1)
}

func TestShadeAlphaLevels(t *testing.T) {
	assert.Equal(t, float32(0.25), shadeAlpha(0x2591))
	assert.Equal(t, float32(0.5), shadeAlpha(0x2592))
	assert.Equal(t, float32(0.75), shadeAlpha(0x2593))
	assert.Equal(t, float32(1.0), shadeAlpha(0x2588))
}

func TestBrailleDotCount(t *testing.T) {
	// 0x28FF has all 8 dots set.
	rects := braille(0x28FF)
	assert.Len(t, rects, 8)

	rects = braille(0x2800)
	assert.Empty(t, rects)

	// single dot (bit 0 set) gives exactly one rect.
	rects = braille(0x2801)
	assert.Len(t, rects, 1)
}

func TestPowerlineUnknownFallsBackToCenteredSquare(t *testing.T) {
	rects := powerline(0xE0D4)
	require.Len(t, rects, 1)
	assert.Equal(t, unitRect{0.35, 0.35, 0.65, 0.65}, rects[0])
}

func TestTriangleOrientationMirrored(t *testing.T) {
	cellRect := unitRect{0, 0, 1, 1}
	right := triangle(cellRect, 0)
	left := triangle(cellRect, 1)
	require.Equal(t, len(right), len(left))
	// the right-facing triangle's tip touches X1; the left-facing one X0.
	assert.Equal(t, cellRect.X1, right[0].X1)
	assert.Equal(t, cellRect.X0, left[0].X0)
}
