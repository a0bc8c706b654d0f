// Package cell defines the atomic grid entry and its fixed-length row
// container. Everything here is a plain value type: the grid owns mutation,
// cell only owns shape.
package cell

import (
	"unicode"

	"golang.org/x/text/width"
)

// Flags are per-cell SGR/structural attribute bits.
type Flags uint16

const (
	Bold Flags = 1 << iota
	Dim
	Italic
	Underline
	UnderlineDouble
	UnderlineDotted
	UnderlineDashed
	UnderlineCurly
	Strikeout
	Inverse
	Hidden
	WrapLine   // set on the last column of a row that soft-wrapped
	WideChar   // this cell holds the first column of a 2-column glyph
	WideSpacer // this cell is the second column of a 2-column glyph
)

const underlineStyleMask = Underline | UnderlineDouble | UnderlineDotted | UnderlineDashed | UnderlineCurly

// HasUnderline reports whether any underline style bit is set.
func (f Flags) HasUnderline() bool { return f&underlineStyleMask != 0 }

// ColorKind identifies how a Color's value should be interpreted.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed           // Index into the 256+ palette
	ColorNamed              // A semantic slot (foreground/background/cursor/selection-fg/...)
	ColorRGB                // Direct 24-bit truecolor
)

// NamedSlot enumerates the semantic color slots a Color can reference.
type NamedSlot uint8

const (
	SlotForeground NamedSlot = iota
	SlotBackground
	SlotCursor
	SlotSelectionForeground
	SlotSelectionBackground
)

// Color is a foreground or background color reference. Cells never resolve
// colors themselves — the renderer does, against the active Palette.
type Color struct {
	Kind  ColorKind
	Index uint8
	Slot  NamedSlot
	R, G, B uint8
}

// DefaultColor is the "use the terminal default" sentinel.
func DefaultColor() Color { return Color{Kind: ColorDefault} }

// Indexed builds a palette-indexed color.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// Named builds a semantic-slot color.
func Named(s NamedSlot) Color { return Color{Kind: ColorNamed, Slot: s} }

// RGB builds a direct truecolor color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Hyperlink is an OSC 8 reference attached to a cell.
type Hyperlink struct {
	URI string
	ID  string
}

// Cell is the atomic grid entry.
//
// Combining marks are rare, so they are heap-indirected via a pointer
// rather than carried inline on every cell.
type Cell struct {
	Char      rune
	Combining *[]rune
	Fg        Color
	Bg        Color
	Flags     Flags
	UnderlineColor *Color
	Link      *Hyperlink
}

// Blank returns an empty cell carrying the given template's colors/flags —
// this is the BCE (background color erase) rule: erasing never produces a
// zeroed cell, it clones whatever the cursor template currently holds.
func Blank(template Cell) Cell {
	return Cell{
		Char: ' ',
		Fg:   template.Fg,
		Bg:   template.Bg,
		// Structural flags (wrap/wide) never propagate from a template;
		// only appearance flags do, matching xterm BCE semantics.
		Flags: template.Flags &^ (WrapLine | WideChar | WideSpacer),
		UnderlineColor: template.UnderlineColor,
		Link:           template.Link,
	}
}

// AddCombining appends a zero-width combining mark scalar to the cell.
func (c *Cell) AddCombining(r rune) {
	if c.Combining == nil {
		c.Combining = &[]rune{}
	}
	*c.Combining = append(*c.Combining, r)
}

// IsWide reports whether this cell occupies two display columns.
func (c Cell) IsWide() bool { return c.Flags&WideChar != 0 }

// IsSpacer reports whether this cell is the trailing half of a wide glyph.
func (c Cell) IsSpacer() bool { return c.Flags&WideSpacer != 0 }

// RuneWidth returns the display width of a rune: 0 for combining marks and
// non-printables, 1 for normal characters, 2 for East-Asian wide/fullwidth.
func RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if !unicode.IsPrint(r) {
		return 0
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// StringWidth sums RuneWidth over a string.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}
