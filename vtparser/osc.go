package vtparser

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/oriterm/oriterm/cell"
	"github.com/oriterm/oriterm/palette"
)

func (p *Parser) stepOSC(b byte) {
	switch b {
	case 0x07: // BEL terminator (xterm extension)
		p.dispatchOSC(string(p.str))
		p.reset()
	case 0x1b:
		p.st = stateOSCEsc
	case 0x9c: // 8-bit ST
		p.dispatchOSC(string(p.str))
		p.reset()
	default:
		p.str = append(p.str, b)
	}
}

// stepOSCEsc runs after an ESC seen mid-OSC-string: a following '\'
// completes the 7-bit ST terminator; anything else means the ESC begins a
// new sequence and the OSC string is dispatched as-is first.
func (p *Parser) stepOSCEsc(b byte) {
	if b == '\\' {
		p.dispatchOSC(string(p.str))
		p.reset()
		return
	}
	p.dispatchOSC(string(p.str))
	p.reset()
	p.stepEscape(b)
}

func (p *Parser) dispatchOSC(s string) {
	h := p.h
	idx := strings.IndexByte(s, ';')
	code := s
	rest := ""
	if idx >= 0 {
		code = s[:idx]
		rest = s[idx+1:]
	}
	switch code {
	case "0", "2":
		h.setTitle(rest)
	case "1":
		// icon name only: stored nowhere distinct, ignored.
	case "22":
		h.pushTitle()
	case "23":
		h.popTitle()
	case "4":
		p.dispatchOSC4(rest)
	case "10":
		p.dispatchOSCNamed(rest, namedFg)
	case "11":
		p.dispatchOSCNamed(rest, namedBg)
	case "12":
		p.dispatchOSCNamed(rest, namedCursor)
	case "8":
		p.dispatchOSC8(rest)
	case "52":
		p.dispatchOSC52(rest)
	}
}

type namedSlotKind int

const (
	namedFg namedSlotKind = iota
	namedBg
	namedCursor
)

func (p *Parser) dispatchOSC4(rest string) {
	h := p.h
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 || idx > 255 {
		return
	}
	if parts[1] == "?" {
		h.writeResponse("\x1b]4;" + parts[0] + ";" + rgbReport(h.Palette.Indexed[idx]) + "\x07")
		return
	}
	if rgb, err := palette.ParseHex(parts[1]); err == nil {
		h.Palette.SetIndexed(uint8(idx), rgb)
	}
}

func (p *Parser) dispatchOSCNamed(rest string, slot namedSlotKind) {
	h := p.h
	if rest == "?" {
		var rgb palette.RGB8
		switch slot {
		case namedFg:
			rgb = h.Palette.Fg
		case namedBg:
			rgb = h.Palette.Bg
		case namedCursor:
			rgb = h.Palette.Cursor
		}
		code := map[namedSlotKind]string{namedFg: "10", namedBg: "11", namedCursor: "12"}[slot]
		h.writeResponse("\x1b]" + code + ";" + rgbReport(rgb) + "\x07")
		return
	}
	rgb, err := palette.ParseHex(rest)
	if err != nil {
		return
	}
	switch slot {
	case namedFg:
		h.Palette.Fg = rgb
	case namedBg:
		h.Palette.Bg = rgb
	case namedCursor:
		h.Palette.Cursor = rgb
	}
}

func (p *Parser) dispatchOSC8(rest string) {
	h := p.h
	tmpl := h.Grid.TemplateRef()
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 || parts[1] == "" {
		tmpl.Link = nil
		return
	}
	id := ""
	for _, kv := range strings.Split(parts[0], ":") {
		if strings.HasPrefix(kv, "id=") {
			id = strings.TrimPrefix(kv, "id=")
		}
	}
	if id == "" {
		// Sequences that omit id= still need one: same-link highlighting on
		// hover groups cells by ID, and cells with no id would otherwise all
		// collapse into a single group.
		id = uuid.NewString()
	}
	tmpl.Link = &cell.Hyperlink{URI: parts[1], ID: id}
}

func (p *Parser) dispatchOSC52(rest string) {
	h := p.h
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return
	}
	selection, payload := parts[0], parts[1]
	if h.OnClipboard == nil {
		return
	}
	if payload == "?" {
		got := h.OnClipboard(selection, false, "")
		h.writeResponse("\x1b]52;" + selection + ";" + base64.StdEncoding.EncodeToString([]byte(got)) + "\x07")
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}
	h.OnClipboard(selection, true, string(decoded))
}
