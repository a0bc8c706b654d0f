package vtparser

import (
	"strings"

	"github.com/oriterm/oriterm/cell"
)

// dispatchSGR applies CSI ... m to the grid's cursor template, consuming
// sub-parameters (4:3, 38:2:r:g:b, 38:5:n) where present.
func (p *Parser) dispatchSGR() {
	tmpl := p.h.Grid.TemplateRef()
	if len(p.params) == 0 {
		*tmpl = cell.Cell{}
		return
	}
	toks := make([][]string, len(p.params))
	for i, s := range p.params {
		toks[i] = strings.Split(s, ":")
	}
	for i := 0; i < len(toks); i++ {
		n := parseIntDefault(toks[i][0], 0)
		switch {
		case n == 0:
			*tmpl = cell.Cell{}
		case n == 1:
			tmpl.Flags |= cell.Bold
		case n == 2:
			tmpl.Flags |= cell.Dim
		case n == 3:
			tmpl.Flags |= cell.Italic
		case n == 4:
			tmpl.Flags &^= underlineStyleMaskLocal
			style := 1
			if len(toks[i]) > 1 {
				style = parseIntDefault(toks[i][1], 1)
			}
			tmpl.Flags |= underlineFlagForStyle(style)
		case n == 5 || n == 6:
			// blink: not modeled as a distinct attribute, ignored.
		case n == 7:
			tmpl.Flags |= cell.Inverse
		case n == 8:
			tmpl.Flags |= cell.Hidden
		case n == 9:
			tmpl.Flags |= cell.Strikeout
		case n == 21:
			tmpl.Flags |= cell.UnderlineDouble
		case n == 22:
			tmpl.Flags &^= cell.Bold | cell.Dim
		case n == 23:
			tmpl.Flags &^= cell.Italic
		case n == 24:
			tmpl.Flags &^= underlineStyleMaskLocal
		case n == 25:
			// blink off
		case n == 27:
			tmpl.Flags &^= cell.Inverse
		case n == 28:
			tmpl.Flags &^= cell.Hidden
		case n == 29:
			tmpl.Flags &^= cell.Strikeout
		case n >= 30 && n <= 37:
			tmpl.Fg = cell.Indexed(uint8(n - 30))
		case n == 38:
			consumed := p.consumeExtendedColor(toks, i, true)
			i += consumed
		case n == 39:
			tmpl.Fg = cell.DefaultColor()
		case n >= 40 && n <= 47:
			tmpl.Bg = cell.Indexed(uint8(n - 40))
		case n == 48:
			consumed := p.consumeExtendedColor(toks, i, false)
			i += consumed
		case n == 49:
			tmpl.Bg = cell.DefaultColor()
		case n == 58:
			consumed := p.consumeUnderlineColor(toks, i)
			i += consumed
		case n == 59:
			tmpl.UnderlineColor = nil
		case n >= 90 && n <= 97:
			tmpl.Fg = cell.Indexed(uint8(n-90) + 8)
		case n >= 100 && n <= 107:
			tmpl.Bg = cell.Indexed(uint8(n-100) + 8)
		}
	}
}

const underlineStyleMaskLocal = cell.Underline | cell.UnderlineDouble | cell.UnderlineDotted | cell.UnderlineDashed | cell.UnderlineCurly

func underlineFlagForStyle(style int) cell.Flags {
	switch style {
	case 0:
		return 0
	case 2:
		return cell.UnderlineDouble
	case 3:
		return cell.UnderlineDotted
	case 4:
		return cell.UnderlineDashed
	case 5:
		return cell.UnderlineCurly
	default:
		return cell.Underline
	}
}

// consumeExtendedColor handles 38/48 ; 5 ; n  or  38/48 ; 2 ; r ; g ; b,
// plus their colon-delimited sub-parameter forms, and returns how many
// additional top-level params (semicolon-separated) it consumed when the
// color spec wasn't colon-packed into a single token.
func (p *Parser) consumeExtendedColor(toks [][]string, i int, foreground bool) int {
	tmpl := p.h.Grid.TemplateRef()
	tok := toks[i]
	if len(tok) >= 3 && tok[1] == "5" {
		idx := parseIntDefault(tok[2], 0)
		setColor(tmpl, foreground, cell.Indexed(uint8(idx)))
		return 0
	}
	if len(tok) >= 5 && tok[1] == "2" {
		r := parseIntDefault(tok[2], 0)
		g := parseIntDefault(tok[3], 0)
		b := parseIntDefault(tok[4], 0)
		setColor(tmpl, foreground, cell.RGB(uint8(r), uint8(g), uint8(b)))
		return 0
	}
	// Semicolon-separated form: look ahead at subsequent top-level params.
	if i+1 >= len(toks) {
		return 0
	}
	mode := parseIntDefault(toks[i+1][0], 0)
	if mode == 5 && i+2 < len(toks) {
		idx := parseIntDefault(toks[i+2][0], 0)
		setColor(tmpl, foreground, cell.Indexed(uint8(idx)))
		return 2
	}
	if mode == 2 && i+4 < len(toks) {
		r := parseIntDefault(toks[i+2][0], 0)
		g := parseIntDefault(toks[i+3][0], 0)
		b := parseIntDefault(toks[i+4][0], 0)
		setColor(tmpl, foreground, cell.RGB(uint8(r), uint8(g), uint8(b)))
		return 4
	}
	return 0
}

func (p *Parser) consumeUnderlineColor(toks [][]string, i int) int {
	tmpl := p.h.Grid.TemplateRef()
	tok := toks[i]
	if len(tok) >= 3 && tok[1] == "5" {
		idx := parseIntDefault(tok[2], 0)
		c := cell.Indexed(uint8(idx))
		tmpl.UnderlineColor = &c
		return 0
	}
	if len(tok) >= 5 && tok[1] == "2" {
		r := parseIntDefault(tok[2], 0)
		g := parseIntDefault(tok[3], 0)
		b := parseIntDefault(tok[4], 0)
		c := cell.RGB(uint8(r), uint8(g), uint8(b))
		tmpl.UnderlineColor = &c
		return 0
	}
	return 0
}

func setColor(tmpl *cell.Cell, foreground bool, c cell.Color) {
	if foreground {
		tmpl.Fg = c
		return
	}
	tmpl.Bg = c
}
