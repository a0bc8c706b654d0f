// Package palette resolves cell.Color values (indexed/named/RGB) against a
// concrete 256+ entry xterm-compatible palette plus the named semantic
// slots (foreground, background, cursor, selection). Schemes are modeled
// the way the teacher's render.Theme does, generalized from a handful of
// hardcoded float32 arrays into a data table so config.colors.scheme can
// select one and config.colors.* overrides can patch individual entries.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oriterm/oriterm/cell"
)

// RGB8 is a plain 24-bit color triple.
type RGB8 struct{ R, G, B uint8 }

// Palette is 256 indexed colors (16 ANSI + 216 color-cube + 24 grayscale)
// plus the named semantic slots.
type Palette struct {
	Indexed   [256]RGB8
	Fg        RGB8
	Bg        RGB8
	Cursor    RGB8
	SelFg     RGB8
	SelBg     RGB8
	// MinContrast is the WCAG-like luminance-ratio floor the renderer's
	// foreground pipeline enforces between a glyph and its cell background.
	MinContrast float64
}

// Resolve turns a cell.Color into a concrete RGB8 against this palette.
// ColorDefault resolves to Fg for foreground callers and Bg for background
// callers — Resolve takes the caller's default explicitly since a Color
// value alone can't tell which side it was read from.
func (p *Palette) Resolve(c cell.Color, isForeground bool) RGB8 {
	switch c.Kind {
	case cell.ColorIndexed:
		return p.Indexed[c.Index]
	case cell.ColorRGB:
		return RGB8{c.R, c.G, c.B}
	case cell.ColorNamed:
		switch c.Slot {
		case cell.SlotForeground:
			return p.Fg
		case cell.SlotBackground:
			return p.Bg
		case cell.SlotCursor:
			return p.Cursor
		case cell.SlotSelectionForeground:
			return p.SelFg
		case cell.SlotSelectionBackground:
			return p.SelBg
		}
		fallthrough
	default:
		if isForeground {
			return p.Fg
		}
		return p.Bg
	}
}

// buildIndexed builds the 256-entry indexed table (16 ANSI + 6x6x6 cube +
// 24 gray) with xterm's standard stepping.
func buildIndexed() [256]RGB8 {
	var t [256]RGB8
	ansi16 := [16]RGB8{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	copy(t[0:16], ansi16[:])

	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				t[i] = RGB8{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}
	for gray := 0; gray < 24; gray++ {
		v := uint8(8 + gray*10)
		t[232+gray] = RGB8{v, v, v}
	}
	return t
}

// Scheme names a built-in palette, matching the teacher's
// config.ThemeOptions()/render.ThemeByName set plus their fg/bg/cursor
// triples.
type Scheme struct {
	Name, Label      string
	Fg, Bg, Cursor   RGB8
	SelFg, SelBg     RGB8
}

var schemes = map[string]Scheme{
	"oriterm-blue": {
		Name: "oriterm-blue", Label: "Oriterm Blue",
		Fg: RGB8{232, 237, 247}, Bg: RGB8{13, 16, 26}, Cursor: RGB8{162, 224, 199},
		SelBg: RGB8{116, 182, 255}, SelFg: RGB8{13, 16, 26},
	},
	"crow-black": {
		Name: "crow-black", Label: "Crow Black",
		Fg: RGB8{230, 230, 230}, Bg: RGB8{5, 5, 5}, Cursor: RGB8{246, 246, 246},
		SelBg: RGB8{179, 179, 179}, SelFg: RGB8{5, 5, 5},
	},
	"magpie-grey": {
		Name: "magpie-grey", Label: "Magpie Black/White/Grey",
		Fg: RGB8{245, 245, 245}, Bg: RGB8{17, 17, 17}, Cursor: RGB8{255, 255, 255},
		SelBg: RGB8{208, 208, 208}, SelFg: RGB8{17, 17, 17},
	},
	"catppuccin-mocha": {
		Name: "catppuccin-mocha", Label: "Catppuccin Mocha",
		Fg: RGB8{205, 214, 244}, Bg: RGB8{30, 30, 46}, Cursor: RGB8{245, 194, 231},
		SelBg: RGB8{137, 180, 250}, SelFg: RGB8{30, 30, 46},
	},
}

// SchemeOptions lists the built-in schemes for a theme-picker UI.
func SchemeOptions() []Scheme {
	out := make([]Scheme, 0, len(schemes))
	// stable, human-curated order rather than map iteration order.
	for _, name := range []string{"oriterm-blue", "crow-black", "magpie-grey", "catppuccin-mocha"} {
		out = append(out, schemes[name])
	}
	return out
}

// FromScheme builds a Palette from a named built-in scheme, falling back to
// oriterm-blue for an unknown name.
func FromScheme(name string) *Palette {
	s, ok := schemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		s = schemes["oriterm-blue"]
	}
	p := &Palette{
		Indexed:     buildIndexed(),
		Fg:          s.Fg,
		Bg:          s.Bg,
		Cursor:      s.Cursor,
		SelFg:       s.SelFg,
		SelBg:       s.SelBg,
		MinContrast: 1.0,
	}
	return p
}

// SetIndexed overrides a single palette slot (colors.ansi.N / colors.bright.N).
func (p *Palette) SetIndexed(index uint8, rgb RGB8) { p.Indexed[index] = rgb }

// ParseHex parses "#rrggbb" or "rrggbb" into an RGB8, for config overrides.
func ParseHex(s string) (RGB8, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB8{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB8{}, fmt.Errorf("palette: invalid hex color %q: %w", s, err)
	}
	return RGB8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Float32 returns the color as a premultiplied-ready [4]float32 RGBA with
// alpha a, for handing to the renderer's instance builder.
func (c RGB8) Float32(a float32) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, a}
}

// RelativeLuminance is the WCAG relative luminance of the color, used by
// the renderer's minimum-contrast lift.
func (c RGB8) RelativeLuminance() float64 {
	lin := func(v uint8) float64 {
		x := float64(v) / 255
		if x <= 0.03928 {
			return x / 12.92
		}
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio is the WCAG contrast ratio between two colors (always >= 1).
func ContrastRatio(a, b RGB8) float64 {
	la, lb := a.RelativeLuminance()+0.05, b.RelativeLuminance()+0.05
	if la < lb {
		la, lb = lb, la
	}
	return la / lb
}
