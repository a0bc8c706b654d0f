package vtparser

import "strings"

func (p *Parser) stepDCS(b byte) {
	switch b {
	case 0x1b:
		p.st = stateDCSEsc
	case 0x9c:
		p.dispatchDCS(string(p.str))
		p.reset()
	default:
		p.str = append(p.str, b)
	}
}

func (p *Parser) stepDCSEsc(b byte) {
	if b == '\\' {
		p.dispatchDCS(string(p.str))
	}
	p.reset()
	if b != '\\' {
		p.stepEscape(b)
	}
}

// stepDCSIgnore/stepDCSIgnoreEsc collect and discard PM (ESC ^) and APC
// (ESC _) strings — nothing in this handler consumes them.
func (p *Parser) stepDCSIgnore(b byte) {
	switch b {
	case 0x1b:
		p.st = stateDCSIgnoreEsc
	case 0x9c:
		p.reset()
	}
}

func (p *Parser) stepDCSIgnoreEsc(b byte) {
	p.reset()
	if b != '\\' {
		p.stepEscape(b)
	}
}

// dispatchDCS handles the minimal set of DCS requests the handler answers:
// Kitty keyboard-flags state query and XTGETTCAP.
func (p *Parser) dispatchDCS(s string) {
	h := p.h
	switch {
	case strings.HasPrefix(s, "+q"): // XTGETTCAP
		// Unsupported capability names get an empty response per xterm.
		h.writeResponse("\x1bP0+r\x1b\\")
	case s == "?u":
		h.writeResponse("\x1bP1$r" + "\x1b\\")
	}
}
