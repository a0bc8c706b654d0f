package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriterm/oriterm/cell"
)

func TestFromSchemeKnownName(t *testing.T) {
	p := FromScheme("crow-black")
	assert.Equal(t, RGB8{5, 5, 5}, p.Bg)
	assert.Equal(t, RGB8{230, 230, 230}, p.Fg)
}

func TestFromSchemeUnknownFallsBackToDefault(t *testing.T) {
	p := FromScheme("not-a-real-scheme")
	def := FromScheme("oriterm-blue")
	assert.Equal(t, def.Bg, p.Bg)
	assert.Equal(t, def.Fg, p.Fg)
}

func TestFromSchemeCaseAndWhitespaceInsensitive(t *testing.T) {
	p := FromScheme("  Crow-Black  ")
	assert.Equal(t, RGB8{5, 5, 5}, p.Bg)
}

func TestResolveIndexedAndRGB(t *testing.T) {
	p := FromScheme("oriterm-blue")
	assert.Equal(t, p.Indexed[1], p.Resolve(cell.Indexed(1), true))
	assert.Equal(t, RGB8{10, 20, 30}, p.Resolve(cell.RGB(10, 20, 30), true))
}

func TestResolveNamedSlots(t *testing.T) {
	p := FromScheme("oriterm-blue")
	assert.Equal(t, p.Fg, p.Resolve(cell.Named(cell.SlotForeground), true))
	assert.Equal(t, p.Bg, p.Resolve(cell.Named(cell.SlotBackground), false))
	assert.Equal(t, p.Cursor, p.Resolve(cell.Named(cell.SlotCursor), true))
	assert.Equal(t, p.SelFg, p.Resolve(cell.Named(cell.SlotSelectionForeground), true))
	assert.Equal(t, p.SelBg, p.Resolve(cell.Named(cell.SlotSelectionBackground), false))
}

func TestResolveDefaultUsesForegroundFlag(t *testing.T) {
	p := FromScheme("oriterm-blue")
	assert.Equal(t, p.Fg, p.Resolve(cell.DefaultColor(), true))
	assert.Equal(t, p.Bg, p.Resolve(cell.DefaultColor(), false))
}

func TestSetIndexedOverride(t *testing.T) {
	p := FromScheme("oriterm-blue")
	p.SetIndexed(5, RGB8{1, 2, 3})
	assert.Equal(t, RGB8{1, 2, 3}, p.Indexed[5])
}

func TestBuildIndexedANSIAndCube(t *testing.T) {
	t16 := buildIndexed()
	assert.Equal(t, RGB8{0, 0, 0}, t16[0])
	assert.Equal(t, RGB8{255, 255, 255}, t16[15])
	// color cube base at 16, steps[0]==0
	assert.Equal(t, RGB8{0, 0, 0}, t16[16])
	// grayscale ramp starts at 232
	assert.Equal(t, RGB8{8, 8, 8}, t16[232])
}

func TestParseHexValid(t *testing.T) {
	c, err := ParseHex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, RGB8{255, 128, 0}, c)

	c2, err := ParseHex("0080ff")
	require.NoError(t, err)
	assert.Equal(t, RGB8{0, 128, 255}, c2)
}

func TestParseHexInvalid(t *testing.T) {
	_, err := ParseHex("nope")
	assert.Error(t, err)
	_, err = ParseHex("#ff00")
	assert.Error(t, err)
}

func TestFloat32(t *testing.T) {
	c := RGB8{255, 0, 128}
	got := c.Float32(0.5)
	assert.InDelta(t, 1.0, got[0], 0.001)
	assert.InDelta(t, 0.0, got[1], 0.001)
	assert.InDelta(t, 0.5019, got[2], 0.001)
	assert.Equal(t, float32(0.5), got[3])
}

func TestRelativeLuminanceBlackLessThanWhite(t *testing.T) {
	black := RGB8{0, 0, 0}
	white := RGB8{255, 255, 255}
	assert.Less(t, black.RelativeLuminance(), white.RelativeLuminance())
}

func TestContrastRatioIsSymmetricAndAtLeastOne(t *testing.T) {
	black := RGB8{0, 0, 0}
	white := RGB8{255, 255, 255}
	r1 := ContrastRatio(black, white)
	r2 := ContrastRatio(white, black)
	assert.Equal(t, r1, r2)
	assert.GreaterOrEqual(t, r1, 1.0)
	assert.InDelta(t, 21.0, r1, 0.1)

	same := ContrastRatio(white, white)
	assert.InDelta(t, 1.0, same, 0.001)
}

func TestSchemeOptionsStableOrder(t *testing.T) {
	opts := SchemeOptions()
	require.Len(t, opts, 4)
	assert.Equal(t, "oriterm-blue", opts[0].Name)
	assert.Equal(t, "crow-black", opts[1].Name)
}
