// Package keyencode turns a logical key press into PTY-bound bytes, in
// either legacy xterm form or the Kitty keyboard protocol, generalized
// from the teacher's keybindings package (which only implemented the
// legacy, press-only path) to cover both schemes plus release/repeat
// events and the shared modifier-bit encoding spec.md §4.8 specifies.
package keyencode

import (
	"fmt"
	"strings"
)

// Key identifies a logical key independent of physical layout.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPDecimal
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyChar // a printable character carried in Event.Rune
)

// Mods is the shift/alt/control/super bitset, ordered per spec.md §4.8
// ("bits shift → alt → control → super").
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModAlt
	ModControl
	ModSuper
)

// xtermParam is "bits + 1", xterm's modifier parameter convention.
func (m Mods) xtermParam() int { return int(m) + 1 }

// EventType distinguishes press/repeat/release, relevant only in Kitty mode.
type EventType int

const (
	Press EventType = iota
	Repeat
	Release
)

// Event is a single logical key event to encode.
type Event struct {
	Key      Key
	Rune     rune // valid when Key == KeyChar
	Mods     Mods
	Type     EventType
	Location int // 0 = standard, 1 = left, 2 = right, 3 = keypad
}

// Mode selects which protocol Encode uses.
type Mode struct {
	ApplicationCursor bool
	ApplicationKeypad bool
	Kitty             KittyFlags
}

// KittyFlags mirrors vtparser.KittyFlags without importing vtparser — the
// encoder only needs the bit values, not the stack machinery.
type KittyFlags uint8

const (
	KittyDisambiguate KittyFlags = 1 << iota
	KittyReportEventTypes
	KittyReportAlternate
	KittyReportAllAsEscape
	KittyReportText
)

// Encode produces the PTY bytes for ev under mode. Returns nil for events
// that produce no bytes (e.g. a plain release when Kitty event reporting
// is off).
func Encode(ev Event, mode Mode) []byte {
	if mode.Kitty != 0 {
		return encodeKitty(ev, mode)
	}
	return encodeLegacy(ev, mode)
}

// ---- legacy xterm ----------------------------------------------------

var legacyLetterFinal = map[Key]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
	KeyHome: 'H', KeyEnd: 'F',
	KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S',
}

var legacyTildeNum = map[Key]int{
	KeyHome: 1, KeyInsert: 2, KeyDelete: 3, KeyEnd: 4,
	KeyPageUp: 5, KeyPageDown: 6,
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
	KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
}

func encodeLegacy(ev Event, mode Mode) []byte {
	if ev.Type == Release {
		return nil // legacy mode is press-only
	}

	if ev.Key == KeyChar {
		return encodeLegacyChar(ev)
	}

	switch ev.Key {
	case KeyBackspace:
		return []byte{0x7f}
	case KeyTab:
		if ev.Mods&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{0x09}
	case KeyEnter:
		return []byte{0x0d}
	case KeyEscape:
		return []byte{0x1b}
	}

	if final, ok := legacyLetterFinal[ev.Key]; ok {
		if ev.Mods == 0 {
			if mode.ApplicationCursor && isCursorKey(ev.Key) {
				return []byte{0x1b, 'O', final}
			}
			return []byte{0x1b, '[', final}
		}
		return []byte(fmt.Sprintf("\x1b[1;%d%c", ev.Mods.xtermParam(), final))
	}

	if num, ok := legacyTildeNum[ev.Key]; ok {
		if ev.Mods == 0 {
			return []byte(fmt.Sprintf("\x1b[%d~", num))
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d~", num, ev.Mods.xtermParam()))
	}

	if mode.ApplicationKeypad {
		if seq, ok := keypadAppSeq(ev.Key); ok {
			return []byte(seq)
		}
	}

	return nil
}

func isCursorKey(k Key) bool {
	switch k {
	case KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd:
		return true
	}
	return false
}

func keypadAppSeq(k Key) (string, bool) {
	switch k {
	case KeyKPDivide:
		return "\x1bOo", true
	case KeyKPMultiply:
		return "\x1bOj", true
	case KeyKPSubtract:
		return "\x1bOm", true
	case KeyKPAdd:
		return "\x1bOk", true
	case KeyKPEnter:
		return "\x1bOM", true
	case KeyKPDecimal:
		return "\x1bOn", true
	case KeyKP0:
		return "\x1bOp", true
	case KeyKP1:
		return "\x1bOq", true
	case KeyKP2:
		return "\x1bOr", true
	case KeyKP3:
		return "\x1bOs", true
	case KeyKP4:
		return "\x1bOt", true
	case KeyKP5:
		return "\x1bOu", true
	case KeyKP6:
		return "\x1bOv", true
	case KeyKP7:
		return "\x1bOw", true
	case KeyKP8:
		return "\x1bOx", true
	case KeyKP9:
		return "\x1bOy", true
	}
	return "", false
}

// encodeLegacyChar handles Ctrl/Alt combinations over a printable rune,
// including the special-cased Ctrl+2/@/Space (NUL) and Ctrl+8 (DEL) rules.
func encodeLegacyChar(ev Event) []byte {
	r := ev.Rune

	if ev.Mods&ModControl != 0 {
		if b, ok := ctrlByte(r); ok {
			out := []byte{b}
			if ev.Mods&ModAlt != 0 {
				out = append([]byte{0x1b}, out...)
			}
			return out
		}
	}

	var buf strings.Builder
	if ev.Mods&ModAlt != 0 {
		buf.WriteByte(0x1b)
	}
	buf.WriteRune(r)
	return []byte(buf.String())
}

// ctrlByte implements "Ctrl + letter" → C0 byte, plus the 2/@/Space → NUL
// and 8 → DEL special cases.
func ctrlByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r == '2' || r == '@' || r == ' ':
		return 0x00, true
	case r == '8':
		return 0x7f, true
	case r >= '[' && r <= '_': // [, \, ], ^, _ → ESC, FS, GS, RS, US
		return byte(r - '@'), true
	}
	return 0, false
}

// ---- Kitty keyboard protocol -------------------------------------------

// kittyCodepoint maps named (non-printable) keys to Kitty's reserved
// functional-key Unicode range (U+E000 private-use area convention the
// protocol documents for legacy keys without a natural codepoint).
var kittyCodepoint = map[Key]int{
	KeyUp: 57352, KeyDown: 57353, KeyRight: 57351, KeyLeft: 57350,
	KeyHome: 57356, KeyEnd: 57357, KeyPageUp: 57354, KeyPageDown: 57355,
	KeyInsert: 57348, KeyDelete: 57349, KeyBackspace: 127, KeyTab: 9,
	KeyEnter: 13, KeyEscape: 27,
	KeyF1: 57364, KeyF2: 57365, KeyF3: 57366, KeyF4: 57367,
	KeyF5: 57368, KeyF6: 57369, KeyF7: 57370, KeyF8: 57371,
	KeyF9: 57372, KeyF10: 57373, KeyF11: 57374, KeyF12: 57375,
}

func encodeKitty(ev Event, mode Mode) []byte {
	if ev.Type == Release && mode.Kitty&KittyReportEventTypes == 0 {
		return nil
	}

	cp, ok := kittyCodepoint[ev.Key]
	if !ok && ev.Key == KeyChar {
		cp = int(ev.Rune)
	} else if !ok {
		return nil
	}

	modParam := 0
	if ev.Mods != 0 {
		modParam = ev.Mods.xtermParam()
	}

	eventSuffix := ""
	if mode.Kitty&KittyReportEventTypes != 0 {
		switch ev.Type {
		case Repeat:
			eventSuffix = ":2"
		case Release:
			eventSuffix = ":3"
		}
	}

	// No modifiers, no event reporting, printable key: plain UTF-8 falls
	// back rather than paying for a CSI u sequence.
	if modParam == 0 && eventSuffix == "" && ev.Key == KeyChar && ev.Type == Press {
		return []byte(string(ev.Rune))
	}

	if modParam == 0 {
		return []byte(fmt.Sprintf("\x1b[%d%su", cp, eventSuffix))
	}
	return []byte(fmt.Sprintf("\x1b[%d;%d%su", cp, modParam, eventSuffix))
}
