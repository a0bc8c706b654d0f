// decompose.go builds box-drawing, block-element, braille, and Powerline
// glyphs as cell-relative rectangles instead of sampling them from the font
// atlas, so adjacent cells join pixel-perfectly regardless of font metrics
// (spec.md §4.4's "built-in glyphs" rule). None of the example fonts ship
// full Nerd Font coverage for these ranges, which is exactly the failure
// mode this sidesteps.
package render

// unitRect is a rectangle in cell-local unit space: (0,0) is the cell's
// top-left corner, (1,1) its bottom-right.
type unitRect struct{ X0, Y0, X1, Y1 float32 }

const lineThickness = 0.12   // light line weight, fraction of cell size
const heavyThickness = 0.22  // heavy line weight

// decomposeGlyph returns the rectangles making up r if it falls in one of
// the built-in ranges, and ok=true. The caller draws each rect as a
// background-pipeline instance at the glyph's foreground color.
func decomposeGlyph(r rune) ([]unitRect, bool) {
	switch {
	case r >= 0x2500 && r <= 0x257F:
		return boxDrawing(r), true
	case r >= 0x2580 && r <= 0x259F:
		return blockElement(r), true
	case r >= 0x2800 && r <= 0x28FF:
		return braille(r), true
	case r >= 0xE0A0 && r <= 0xE0D4:
		return powerline(r), true
	}
	return nil, false
}

func hBar(y0, y1 float32) unitRect { return unitRect{0, y0, 1, y1} }
func vBar(x0, x1 float32) unitRect { return unitRect{x0, 0, x1, 1} }

// boxDrawing covers the light/heavy horizontal and vertical lines plus the
// light and heavy corners, T-junctions and crosses (corners, T-junctions and
// crosses are drawn at light weight). Every other codepoint in the range
// (double-line, dashed, rounded, diagonal) is drawn as a plain light cross.
func boxDrawing(r rune) []unitRect {
	mid0, mid1 := float32(0.5-lineThickness/2), float32(0.5+lineThickness/2)
	hmid0, hmid1 := float32(0.5-heavyThickness/2), float32(0.5+heavyThickness/2)

	switch r {
	case 0x2500, 0x2501: // ─ horizontal (light, heavy)
		if r == 0x2501 {
			return []unitRect{hBar(hmid0, hmid1)}
		}
		return []unitRect{hBar(mid0, mid1)}
	case 0x2502, 0x2503: // │ vertical
		if r == 0x2503 {
			return []unitRect{vBar(hmid0, hmid1)}
		}
		return []unitRect{vBar(mid0, mid1)}
	case 0x250C, 0x250F: // ┌ top-left corner
		return []unitRect{{mid0, 0.5, 1, mid1}, {mid0, mid0, mid1, 1}}
	case 0x2510, 0x2513: // ┐ top-right corner
		return []unitRect{{0, mid0, mid1, mid1}, {mid0, mid0, mid1, 1}}
	case 0x2514, 0x2517: // └ bottom-left corner
		return []unitRect{{mid0, 0.5, 1, mid1}, {mid0, 0, mid1, mid1}}
	case 0x2518, 0x251B: // ┘ bottom-right corner
		return []unitRect{{0, mid0, mid1, mid1}, {mid0, 0, mid1, mid1}}
	case 0x251C, 0x2523: // ├ T pointing right
		return []unitRect{vBar(mid0, mid1), hBar(mid0, mid1)}
	case 0x2524, 0x252B: // ┤ T pointing left
		return []unitRect{vBar(mid0, mid1), {0, mid0, mid1, mid1}}
	case 0x252C, 0x2533: // ┬ T pointing down
		return []unitRect{hBar(mid0, mid1), {mid0, mid0, mid1, 1}}
	case 0x2534, 0x253B: // ┴ T pointing up
		return []unitRect{hBar(mid0, mid1), {mid0, 0, mid1, mid1}}
	case 0x253C, 0x254B: // ┼ cross
		return []unitRect{hBar(mid0, mid1), vBar(mid0, mid1)}
	default:
		// Unhandled box-drawing codepoint (dashed/double/curved variants):
		// approximate with a plain cross so the cell isn't left blank.
		return []unitRect{hBar(mid0, mid1), vBar(mid0, mid1)}
	}
}

// blockElement covers the eighth/quarter block shades and solid blocks.
func blockElement(r rune) []unitRect {
	switch r {
	case 0x2580: // upper half
		return []unitRect{{0, 0, 1, 0.5}}
	case 0x2584: // lower half
		return []unitRect{{0, 0.5, 1, 1}}
	case 0x2588: // full block
		return []unitRect{{0, 0, 1, 1}}
	case 0x258C: // left half
		return []unitRect{{0, 0, 0.5, 1}}
	case 0x2590: // right half
		return []unitRect{{0.5, 0, 1, 1}}
	case 0x2591, 0x2592, 0x2593: // light/medium/dark shade
		// Shades are handled via alpha in the caller (shadeAlpha), the
		// rect itself always covers the full cell.
		return []unitRect{{0, 0, 1, 1}}
	default:
		if r >= 0x2581 && r <= 0x2588 {
			frac := float32(r-0x2580) / 8
			return []unitRect{{0, 1 - frac, 1, 1}}
		}
		if r >= 0x2589 && r <= 0x258F {
			frac := float32(0x2590-r) / 8
			return []unitRect{{0, 0, frac, 1}}
		}
		return []unitRect{{0, 0, 1, 1}}
	}
}

// shadeAlpha returns the fill alpha for the three shade glyphs, 1 for
// every other block element.
func shadeAlpha(r rune) float32 {
	switch r {
	case 0x2591:
		return 0.25
	case 0x2592:
		return 0.5
	case 0x2593:
		return 0.75
	default:
		return 1.0
	}
}

// braille renders a Unicode braille codepoint as its eight dot-matrix
// rectangles, reading the 8 low bits of (r - 0x2800) in the standard
// dot-numbering order.
func braille(r rune) []unitRect {
	bits := r - 0x2800
	// dot positions in a 2x4 matrix, (col, row) each 0-based.
	dots := [8][2]int{
		{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {0, 3}, {1, 3},
	}
	const dotW, dotH = 0.35, 0.2
	var out []unitRect
	for i, d := range dots {
		if bits&(1<<i) == 0 {
			continue
		}
		cx := float32(d[0])*0.5 + 0.25
		cy := float32(d[1])*0.22 + 0.14
		out = append(out, unitRect{cx - dotW/2, cy - dotH/2, cx + dotW/2, cy + dotH/2})
	}
	return out
}

// powerline renders the common separator triangles/arrows/pipe as a
// triangle or bar; codepoints this doesn't recognize fall back to a small
// centered square so a glyph always appears rather than nothing.
func powerline(r rune) []unitRect {
	switch r {
	case 0xE0B0: // right-pointing solid triangle
		return triangle(unitRect{0, 0, 1, 1}, 0)
	case 0xE0B2: // left-pointing solid triangle
		return triangle(unitRect{0, 0, 1, 1}, 1)
	case 0xE0B1, 0xE0B3: // thin chevrons, approximated as the solid form
		return triangle(unitRect{0, 0, 1, 1}, 0)
	default:
		return []unitRect{{0.35, 0.35, 0.65, 0.65}}
	}
}

// triangleTris would be the natural representation, but the renderer's
// instance format is rectangle-only; triangle approximates a point with a
// thin rectangle stack so the shape still reads as directional at text
// sizes. side 0 points right (tip at X1); side 1 is the mirrored,
// left-pointing form (tip at X0). Slices run from the tip outward, each as
// tall as the triangle at its far edge.
func triangle(cell unitRect, side int) []unitRect {
	const steps = 6
	w, h := cell.X1-cell.X0, cell.Y1-cell.Y0
	out := make([]unitRect, 0, steps)
	for i := 0; i < steps; i++ {
		t0 := float32(i) / steps
		t1 := float32(i+1) / steps
		y0 := cell.Y0 + (1-t1)*h/2
		y1 := cell.Y1 - (1-t1)*h/2
		var x0, x1 float32
		if side == 0 {
			x0, x1 = cell.X1-t1*w, cell.X1-t0*w
		} else {
			x0, x1 = cell.X0+t0*w, cell.X0+t1*w
		}
		out = append(out, unitRect{x0, y0, x1, y1})
	}
	return out
}
