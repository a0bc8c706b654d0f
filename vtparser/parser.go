package vtparser

import (
	"unicode/utf8"

	"github.com/oriterm/oriterm/charset"
)

// state names the high-level parser's current sequence-collection phase.
type state int

const (
	stateGround state = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEsc
	stateDCS
	stateDCSEsc
	stateDCSIgnore
	stateDCSIgnoreEsc
	stateDesignator
)

// Parser is the high-level ANSI/VT/OSC/DCS state machine. It owns a
// Handler and drives it byte by byte; LowLevelInterceptor runs over the
// same bytes independently (see lowlevel.go) and is driven by the same
// Feed call in Session.
type Parser struct {
	h *Handler

	st state

	// CSI collection
	private  byte // '?', '>', '=', '<', or 0
	params   []string
	curParam []byte
	interm   []byte

	// OSC/DCS collection
	str []byte

	pendingDesignator byte

	// UTF-8 continuation buffer for ground-state printing.
	utf8buf  [4]byte
	utf8n    int
	utf8need int
}

// NewParser builds a parser bound to h.
func NewParser(h *Handler) *Parser { return &Parser{h: h} }

// Feed advances the parser over a chunk of PTY output bytes.
func (p *Parser) Feed(data []byte) {
	for _, b := range data {
		p.step(b)
	}
}

func (p *Parser) step(b byte) {
	switch p.st {
	case stateGround:
		p.stepGround(b)
	case stateEscape:
		p.stepEscape(b)
	case stateCSI:
		p.stepCSI(b)
	case stateOSC:
		p.stepOSC(b)
	case stateOSCEsc:
		p.stepOSCEsc(b)
	case stateDCS:
		p.stepDCS(b)
	case stateDCSEsc:
		p.stepDCSEsc(b)
	case stateDCSIgnore:
		p.stepDCSIgnore(b)
	case stateDCSIgnoreEsc:
		p.stepDCSIgnoreEsc(b)
	case stateDesignator:
		p.stepDesignator(b)
	}
}

func (p *Parser) reset() {
	p.st = stateGround
	p.private = 0
	p.params = p.params[:0]
	p.curParam = p.curParam[:0]
	p.interm = p.interm[:0]
	p.str = p.str[:0]
	p.utf8n = 0
	p.utf8need = 0
}

func (p *Parser) stepGround(b byte) {
	switch {
	case b == 0x1b:
		p.st = stateEscape
	case b < 0x20 || b == 0x7f:
		if p.utf8n > 0 {
			p.flushUTF8Error()
		}
		p.h.execute(b)
	case b < 0x80:
		if p.utf8n > 0 {
			p.flushUTF8Error()
		}
		p.h.print(rune(b))
	default:
		p.collectUTF8(b)
	}
}

// collectUTF8 accumulates continuation bytes for a multi-byte rune printed
// in ground state; PTY output is never split across Feed calls at a
// control-sequence boundary mid-rune in practice, but this still handles it
// safely by treating an invalid sequence as the replacement character.
func (p *Parser) collectUTF8(b byte) {
	if p.utf8n == 0 {
		n := utf8Len(b)
		if n == 0 {
			p.h.print(utf8.RuneError)
			return
		}
		p.utf8need = n
		p.utf8buf[0] = b
		p.utf8n = 1
		if p.utf8need == 1 {
			p.flushUTF8()
		}
		return
	}
	if b&0xC0 != 0x80 {
		p.flushUTF8Error()
		p.collectUTF8(b)
		return
	}
	p.utf8buf[p.utf8n] = b
	p.utf8n++
	if p.utf8n >= p.utf8need {
		p.flushUTF8()
	}
}

func (p *Parser) flushUTF8() {
	r, _ := utf8.DecodeRune(p.utf8buf[:p.utf8n])
	p.h.print(r)
	p.utf8n, p.utf8need = 0, 0
}

func (p *Parser) flushUTF8Error() {
	p.h.print(utf8.RuneError)
	p.utf8n, p.utf8need = 0, 0
}

func utf8Len(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

func (p *Parser) stepEscape(b byte) {
	switch b {
	case '[':
		p.private = 0
		p.params = p.params[:0]
		p.curParam = p.curParam[:0]
		p.interm = p.interm[:0]
		p.st = stateCSI
	case ']':
		p.str = p.str[:0]
		p.st = stateOSC
	case 'P':
		p.str = p.str[:0]
		p.st = stateDCS
	case '^', '_': // PM, APC: collect and discard
		p.str = p.str[:0]
		p.st = stateDCSIgnore
	case 'c': // RIS
		p.h.Grid.EraseDisplay(0)
		p.h.Modes = DefaultModes()
		p.reset()
	case 'D': // IND
		p.h.Grid.Newline()
		p.reset()
	case 'M': // RI
		p.h.Grid.ReverseIndex()
		p.reset()
	case 'E': // NEL
		p.h.Grid.CarriageReturn()
		p.h.Grid.Newline()
		p.reset()
	case '7': // DECSC
		p.h.Grid.SaveCursor()
		p.reset()
	case '8': // DECRC
		p.h.Grid.RestoreCursor()
		p.reset()
	case '(', ')', '*', '+': // charset designation, next byte is the set
		p.pendingDesignator = b
		p.st = stateDesignator
	case '=': // DECKPAM
		p.h.Modes.ApplicationKeypad = true
		p.reset()
	case '>': // DECKPNM
		p.h.Modes.ApplicationKeypad = false
		p.reset()
	default:
		p.reset()
	}
}

// stepDesignator consumes the set-selector byte following ESC ( ) * +.
func (p *Parser) stepDesignator(b byte) {
	slot := map[byte]int{'(': 0, ')': 1, '*': 2, '+': 3}[p.pendingDesignator]
	set := charset.ASCII
	switch b {
	case '0':
		set = charset.DECSpecialGraphics
	case 'A':
		set = charset.UK
	case 'B':
		set = charset.ASCII
	}
	p.h.Charset.Designate(slot, set)
	p.reset()
}
