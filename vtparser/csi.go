package vtparser

import (
	"strconv"
	"strings"

	"github.com/oriterm/oriterm/grid"
)

func (p *Parser) stepCSI(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.curParam = append(p.curParam, b)
	case b == ';':
		p.params = append(p.params, string(p.curParam))
		p.curParam = p.curParam[:0]
	case b == ':':
		// sub-parameter separator (SGR 4:3, 38:2:r:g:b) — keep it inline,
		// the SGR handler splits on ':' itself.
		p.curParam = append(p.curParam, b)
	case b == '?' || b == '>' || b == '=' || b == '<':
		p.private = b
	case b >= 0x20 && b <= 0x2f:
		p.interm = append(p.interm, b)
	case b >= 0x40 && b <= 0x7e:
		p.params = append(p.params, string(p.curParam))
		p.dispatchCSI(b)
		p.reset()
	default:
		p.reset()
	}
}

// intParams parses the collected CSI parameter strings into ints, using def
// for empty fields.
func (p *Parser) intParams(def int) []int {
	out := make([]int, 0, len(p.params))
	for _, s := range p.params {
		out = append(out, parseIntDefault(firstSub(s), def))
	}
	return out
}

func firstSub(s string) string {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return s
}

func (p *Parser) param(i, def int) int {
	ps := p.intParams(def)
	if i < 0 || i >= len(ps) {
		return def
	}
	if p.params[i] == "" {
		return def
	}
	return ps[i]
}

func (p *Parser) paramOr1(i int) int {
	v := p.param(i, 0)
	if v == 0 {
		return 1
	}
	return v
}

func (p *Parser) dispatchCSI(final byte) {
	h := p.h
	g := h.Grid

	if final == 'u' && p.private != 0 {
		p.dispatchKittyMode()
		return
	}
	if p.private == '?' {
		p.dispatchPrivateMode(final)
		return
	}
	if p.private == '>' && final == 'q' {
		h.writeXTVersion()
		return
	}
	if p.private == '>' && final == 'c' {
		h.writeResponse("\x1b[>0;10;1c")
		return
	}
	if p.private == 0 && final == 'q' && hasSpaceInterm(p.interm) {
		p.dispatchDECSCUSR()
		return
	}

	switch final {
	case 'A':
		g.MoveBy(-p.paramOr1(0), 0)
	case 'B':
		g.MoveBy(p.paramOr1(0), 0)
	case 'C':
		g.MoveBy(0, p.paramOr1(0))
	case 'D':
		g.MoveBy(0, -p.paramOr1(0))
	case 'E': // CNL
		g.MoveBy(p.paramOr1(0), 0)
		g.CarriageReturn()
	case 'F': // CPL
		g.MoveBy(-p.paramOr1(0), 0)
		g.CarriageReturn()
	case 'G', '`': // CHA / HPA
		g.Goto(g.Cursor().Row, p.paramOr1(0)-1)
	case 'd': // VPA
		g.Goto(p.paramOr1(0)-1, g.Cursor().Col)
	case 'H', 'f': // CUP / HVP
		g.Goto(p.paramOr1(0)-1, p.paramOr1(1)-1)
	case 'I': // CHT
		g.AdvanceTab(p.paramOr1(0))
	case 'Z': // CBT
		g.BackwardTab(p.paramOr1(0))
	case 'S': // SU
		g.ScrollUp(p.paramOr1(0))
	case 'T': // SD
		g.ScrollDown(p.paramOr1(0))
	case 'L': // IL
		g.InsertLines(p.paramOr1(0))
	case 'M': // DL
		g.DeleteLines(p.paramOr1(0))
	case '@': // ICH
		g.InsertBlank(p.paramOr1(0))
	case 'P': // DCH
		g.DeleteChars(p.paramOr1(0))
	case 'X': // ECH
		g.EraseChars(p.paramOr1(0))
	case 'b': // REP
		if h.lastPrintable != 0 {
			g.RepeatChar(h.lastPrintable, p.paramOr1(0))
		}
	case 'J': // ED
		g.EraseDisplay(grid.EraseMode(p.param(0, 0)))
	case 'K': // EL
		g.EraseLine(grid.LineEraseMode(p.param(0, 0)))
	case 'r': // DECSTBM
		top := p.param(0, 1) - 1
		bot := p.param(1, g.Lines) - 1
		g.SetScrollRegion(top, bot)
	case 'm':
		p.dispatchSGR()
	case 'n': // DSR
		if p.param(0, 0) == 6 {
			c := g.Cursor()
			h.writeResponse("\x1b[" + strconv.Itoa(c.Row+1) + ";" + strconv.Itoa(c.Col+1) + "R")
		}
	case 's': // SCOSC (no region args) or save cursor
		g.SaveCursor()
	case 'u':
		if p.private == 0 {
			g.RestoreCursor()
		}
	case 'h', 'l':
		// public mode set/reset — only IRM (4) is modeled.
		if p.param(0, 0) == 4 {
			h.Modes.InsertMode = final == 'h'
		}
	case 'c': // DA
		h.writeResponse("\x1b[?62;22c")
	}
}

func (p *Parser) dispatchPrivateMode(final byte) {
	h := p.h
	if final != 'h' && final != 'l' {
		return
	}
	set := final == 'h'
	for _, s := range p.params {
		switch firstSub(s) {
		case "1":
			h.Modes.ApplicationCursor = set
		case "6":
			h.Modes.OriginMode = set
		case "7":
			h.Modes.AutoWrap = set
		case "25":
			h.Modes.ShowCursor = set
		case "1000":
			h.Modes.MouseX10 = set
		case "1002":
			h.Modes.MouseButtonEvent = set
		case "1003":
			h.Modes.MouseAnyEvent = set
		case "1004":
			h.Modes.FocusEvents = set
		case "1005":
			h.Modes.MouseUTF8 = set
		case "1006":
			h.Modes.MouseSGR = set
		case "1007":
			h.Modes.AltScrollMode = set
		case "1047":
			p.swapAlt(set, false)
		case "1049":
			p.swapAlt(set, true)
		case "2004":
			h.Modes.BracketedPaste = set
		}
	}
}

// swapAlt implements the resolved `?1047` vs `?1049` open question: 1049
// clears the alt grid fresh on entry and saves/restores the cursor; 1047
// switches buffers without clearing on entry.
func (p *Parser) swapAlt(enter, saveCursor bool) {
	g := p.h.Grid
	if enter {
		if saveCursor {
			g.SaveCursor()
		}
		g.SwapToAlt(saveCursor)
	} else {
		g.SwapToPrimary()
		if saveCursor {
			g.RestoreCursor()
		}
	}
}

// dispatchKittyMode handles the Kitty keyboard protocol's four private-
// marker forms of CSI ... u: "?u" query, ">u" push, "<u" pop, "=u" set.
func (p *Parser) dispatchKittyMode() {
	stack := p.h.activeKitty()
	switch p.private {
	case '?':
		p.h.writeResponse("\x1b[?" + strconv.Itoa(int(stack.current())) + "u")
	case '>':
		stack.push(KittyFlags(p.param(0, 0)))
	case '<':
		stack.pop(p.param(0, 1))
	case '=':
		mode := p.param(1, 1)
		flags := KittyFlags(p.param(0, 0))
		switch mode {
		case 2: // OR into current
			stack.set(stack.current() | flags)
		case 3: // AND-NOT out of current
			stack.set(stack.current() &^ flags)
		default: // 1: replace
			stack.set(flags)
		}
	}
}

// hasSpaceInterm reports whether the collected intermediate bytes contain
// the 0x20 (space) byte DECSCUSR uses to distinguish "CSI Ps SP q" from
// plain "CSI Ps q" forms.
func hasSpaceInterm(interm []byte) bool {
	for _, b := range interm {
		if b == 0x20 {
			return true
		}
	}
	return false
}

// dispatchDECSCUSR handles "CSI Ps SP q", setting the cursor's shape and
// blink state. Ps 0 and 1 both mean a blinking block (1 is the explicit
// form, 0 is "reset to default", which is also a blinking block).
func (p *Parser) dispatchDECSCUSR() {
	h := p.h
	switch p.param(0, 0) {
	case 0, 1:
		h.Cursor = CursorShape{Style: CursorBlock, Blink: true}
	case 2:
		h.Cursor = CursorShape{Style: CursorBlock, Blink: false}
	case 3:
		h.Cursor = CursorShape{Style: CursorUnderline, Blink: true}
	case 4:
		h.Cursor = CursorShape{Style: CursorUnderline, Blink: false}
	case 5:
		h.Cursor = CursorShape{Style: CursorBar, Blink: true}
	case 6:
		h.Cursor = CursorShape{Style: CursorBar, Blink: false}
	}
}

func (h *Handler) writeXTVersion() {
	h.writeResponse("\x1bP>|oriterm(0.1.0)\x1b\\")
}
