package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlankPreservesColorsDropsStructuralFlags(t *testing.T) {
	tpl := Cell{
		Char:  'x',
		Fg:    RGB(1, 2, 3),
		Bg:    RGB(4, 5, 6),
		Flags: Bold | WrapLine | WideChar,
	}
	b := Blank(tpl)
	assert.Equal(t, ' ', b.Char)
	assert.Equal(t, tpl.Fg, b.Fg)
	assert.Equal(t, tpl.Bg, b.Bg)
	assert.True(t, b.Flags&Bold != 0)
	assert.False(t, b.Flags&WrapLine != 0)
	assert.False(t, b.Flags&WideChar != 0)
}

func TestHasUnderlineAcrossStyles(t *testing.T) {
	assert.False(t, Flags(0).HasUnderline())
	assert.True(t, Underline.HasUnderline())
	assert.True(t, UnderlineCurly.HasUnderline())
	assert.True(t, (Bold | UnderlineDashed).HasUnderline())
}

func TestAddCombiningAllocatesOnFirstUse(t *testing.T) {
	var c Cell
	assert.Nil(t, c.Combining)
	c.AddCombining(0x0301)
	require := assert.New(t)
	require.NotNil(c.Combining)
	require.Equal([]rune{0x0301}, *c.Combining)
	c.AddCombining(0x0302)
	require.Equal([]rune{0x0301, 0x0302}, *c.Combining)
}

func TestIsWideIsSpacer(t *testing.T) {
	wide := Cell{Flags: WideChar}
	spacer := Cell{Flags: WideSpacer}
	assert.True(t, wide.IsWide())
	assert.False(t, wide.IsSpacer())
	assert.True(t, spacer.IsSpacer())
	assert.False(t, spacer.IsWide())
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 0, RuneWidth(0))
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('你'))
	assert.Equal(t, 0, RuneWidth(0x0301)) // combining acute accent
}

func TestStringWidthSumsRunes(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("你好"))
}

func TestColorConstructors(t *testing.T) {
	assert.Equal(t, ColorDefault, DefaultColor().Kind)
	idx := Indexed(42)
	assert.Equal(t, ColorIndexed, idx.Kind)
	assert.Equal(t, uint8(42), idx.Index)
	named := Named(SlotCursor)
	assert.Equal(t, ColorNamed, named.Kind)
	assert.Equal(t, SlotCursor, named.Slot)
	rgb := RGB(10, 20, 30)
	assert.Equal(t, ColorRGB, rgb.Kind)
	assert.Equal(t, uint8(10), rgb.R)
	assert.Equal(t, uint8(20), rgb.G)
	assert.Equal(t, uint8(30), rgb.B)
}
