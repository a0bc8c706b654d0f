package render

import (
	"strings"

	"github.com/oriterm/oriterm/palette"
)

// Theme holds the UI-chrome colors the renderer draws outside the grid
// proper: tab bar, borders, menu, search overlay. Cell colors themselves
// always come from the active tab's palette.Palette, resolved per-cell —
// Theme only covers the window dressing around the grid.
type Theme struct {
	TabBar       palette.RGB8
	TabActive    palette.RGB8
	TabInactive  palette.RGB8
	Border       palette.RGB8
	MenuBg       palette.RGB8
	MenuFg       palette.RGB8
	MenuSelected palette.RGB8
	SearchBarBg  palette.RGB8
}

// ThemeByName derives UI-chrome colors from a named palette scheme so the
// tab bar and menu read as part of the same theme as the grid, instead of
// the teacher's independently hardcoded Theme table.
func ThemeByName(name string) Theme {
	s, ok := find(name)
	if !ok {
		s, _ = find("oriterm-blue")
	}
	return Theme{
		TabBar:       darken(s.Bg, 0.25),
		TabActive:    s.Cursor,
		TabInactive:  mix(s.Bg, s.Fg, 0.35),
		Border:       darken(s.Bg, 0.4),
		MenuBg:       darken(s.Bg, 0.1),
		MenuFg:       s.Fg,
		MenuSelected: s.SelBg,
		SearchBarBg:  darken(s.Bg, 0.15),
	}
}

func find(name string) (palette.Scheme, bool) {
	for _, s := range palette.SchemeOptions() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return palette.Scheme{}, false
}

func darken(c palette.RGB8, amount float64) palette.RGB8 {
	scale := func(v uint8) uint8 {
		f := float64(v) * (1 - amount)
		if f < 0 {
			f = 0
		}
		return uint8(f)
	}
	return palette.RGB8{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

func mix(a, b palette.RGB8, t float64) palette.RGB8 {
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return palette.RGB8{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}

// liftForContrast raises fg's luminance against bg until their WCAG contrast
// ratio clears min, scaling toward white rather than flipping to black —
// matches the renderer's minimum-contrast fragment-stage lift described for
// the foreground pipeline, done here per-instance instead of in a shader
// since this repo's instance colors are computed on the CPU.
func liftForContrast(fg, bg palette.RGB8, min float64) palette.RGB8 {
	if min <= 1 || palette.ContrastRatio(fg, bg) >= min {
		return fg
	}
	lo, hi := 0.0, 1.0
	best := fg
	for i := 0; i < 8; i++ {
		t := (lo + hi) / 2
		candidate := mix(fg, palette.RGB8{R: 255, G: 255, B: 255}, t)
		if palette.ContrastRatio(candidate, bg) >= min {
			best = candidate
			hi = t
		} else {
			lo = t
		}
	}
	return best
}
