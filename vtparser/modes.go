package vtparser

// Modes holds every DEC private / ANSI mode the handler tracks. Bools, not a
// bitset — the teacher's parser.go used a handful of named fields rather
// than packed bits, and there are few enough modes that readability wins.
type Modes struct {
	ApplicationCursor bool // DECCKM ?1
	ApplicationKeypad bool // DECKPAM/DECKPNM
	AutoWrap          bool // DECAWM ?7
	OriginMode        bool // DECOM ?6
	ShowCursor        bool // DECTCEM ?25
	BracketedPaste    bool // ?2004
	FocusEvents       bool // ?1004
	AltScrollMode     bool // ?1007

	MouseX10         bool // ?1000
	MouseButtonEvent bool // ?1002
	MouseAnyEvent    bool // ?1003
	MouseUTF8        bool // ?1005
	MouseSGR         bool // ?1006

	InsertMode bool // IRM (public mode 4)
}

// DefaultModes returns the power-on default mode set.
func DefaultModes() Modes {
	return Modes{
		AutoWrap:   true,
		ShowCursor: true,
	}
}

// MouseReportingActive reports whether any mouse mode is enabled.
func (m Modes) MouseReportingActive() bool {
	return m.MouseX10 || m.MouseButtonEvent || m.MouseAnyEvent
}

// CursorStyle names the DECSCUSR-selected cursor shape.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// CursorShape bundles the style and whether it blinks.
type CursorShape struct {
	Style  CursorStyle
	Blink  bool
}
