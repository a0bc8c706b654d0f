// Package vtparser drives a Grid from a raw PTY byte stream. Two
// independent state machines advance over the same bytes: Parser is the
// full ANSI/VT/OSC/DCS machine that dispatches to the Grid and to
// mode/palette/title setters; LowLevelInterceptor runs alongside it and
// only reacts to the handful of sequences the high-level machine discards
// (OSC 7/9/99/777/133).
package vtparser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oriterm/oriterm/charset"
	"github.com/oriterm/oriterm/cell"
	"github.com/oriterm/oriterm/grid"
	"github.com/oriterm/oriterm/palette"
)

// Handler owns everything a byte stream can mutate for one tab: the grid,
// the palette, mode/charset state, and the title stack. The Parser calls
// into it; it never reaches back into the Parser.
type Handler struct {
	Grid    *grid.Grid
	Palette *palette.Palette
	Charset charset.Table
	Modes   Modes
	Cursor  CursorShape

	Title      string
	titleStack []string

	// Writer receives bounded, ASCII, immediately-flushed query responses
	// (DSR, device attributes, color queries, XTVERSION).
	Writer *bufio.Writer

	kittyPrimary kittyStack
	kittyAlt     kittyStack

	CWD string

	OnBell         func()
	OnTitleChange  func(string)
	OnNotification func(kind, text string)
	OnCWDChange    func(string)
	OnPromptMarker func(kind byte, params string)
	OnClipboard    func(selection string, set bool, payload string) string

	lastPrintable rune // for REP
}

// NewHandler builds a handler around an existing grid and palette with
// power-on defaults. w receives query-response bytes (DSR, DA, color
// queries, XTVERSION) and is flushed after every write.
func NewHandler(g *grid.Grid, p *palette.Palette, w io.Writer) *Handler {
	return &Handler{
		Grid:         g,
		Palette:      p,
		Charset:      charset.NewTable(),
		Modes:        DefaultModes(),
		Writer:       bufio.NewWriter(w),
		kittyPrimary: newKittyStack(),
		kittyAlt:     newKittyStack(),
	}
}

func (h *Handler) activeKitty() *kittyStack {
	if h.Grid.IsAlt() {
		return &h.kittyAlt
	}
	return &h.kittyPrimary
}

// KittyFlags returns the currently active screen's Kitty enhancement flags.
func (h *Handler) KittyFlags() KittyFlags { return h.activeKitty().current() }

func (h *Handler) writeResponse(s string) {
	if h.Writer == nil {
		return
	}
	h.Writer.WriteString(s)
	h.Writer.Flush()
}

// ---- print / execute ------------------------------------------------------

func (h *Handler) print(r rune) {
	r = h.Charset.Translate(r)
	if cell.RuneWidth(r) == 0 && r != ' ' {
		h.Grid.PutZeroWidth(r)
		return
	}
	h.Grid.PutChar(r)
	h.lastPrintable = r
}

func (h *Handler) execute(b byte) {
	switch b {
	case 0x07: // BEL
		if h.OnBell != nil {
			h.OnBell()
		}
	case 0x08: // BS
		h.Grid.Backspace()
	case 0x09: // HT
		h.Grid.AdvanceTab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		h.Grid.Newline()
	case 0x0D: // CR
		h.Grid.CarriageReturn()
	case 0x0E: // SO
		h.Charset.ShiftOut()
	case 0x0F: // SI
		h.Charset.ShiftIn()
	case 0x1A: // SUB: print a space and advance, like xterm
		h.Grid.PutChar(' ')
	}
}

// ---- title stack ---------------------------------------------------------

func (h *Handler) setTitle(t string) {
	h.Title = t
	if h.OnTitleChange != nil {
		h.OnTitleChange(t)
	}
}

func (h *Handler) pushTitle() {
	h.titleStack = append(h.titleStack, h.Title)
	if len(h.titleStack) > 64 {
		h.titleStack = h.titleStack[1:]
	}
}

func (h *Handler) popTitle() {
	if len(h.titleStack) == 0 {
		return
	}
	last := h.titleStack[len(h.titleStack)-1]
	h.titleStack = h.titleStack[:len(h.titleStack)-1]
	h.setTitle(last)
}

// ---- color query responses -------------------------------------------------

func rgbReport(rgb palette.RGB8) string {
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x",
		rgb.R, rgb.R, rgb.G, rgb.G, rgb.B, rgb.B)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
