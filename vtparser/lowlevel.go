package vtparser

import "strings"

// lowState is the low-level interceptor's own minimal state — it only
// needs to notice OSC strings, not the full CSI/SGR grammar.
type lowState int

const (
	lowGround lowState = iota
	lowEscape
	lowOSC
	lowOSCEsc
)

// LowLevelInterceptor is the second of the two-parser design: it advances
// over the same byte stream as Parser but only reacts to sequences the
// high-level grammar otherwise discards — OSC 7 (cwd), OSC 9/99/777
// (notifications), and OSC 133 (semantic prompt markers). Keeping it
// wholly separate means its state, and the tests for it, never depend on
// CSI/SGR parsing at all.
type LowLevelInterceptor struct {
	h  *Handler
	st lowState
	str []byte
}

// NewLowLevelInterceptor builds an interceptor bound to h.
func NewLowLevelInterceptor(h *Handler) *LowLevelInterceptor {
	return &LowLevelInterceptor{h: h}
}

// Feed advances the interceptor over the same bytes handed to Parser.Feed.
func (l *LowLevelInterceptor) Feed(data []byte) {
	for _, b := range data {
		l.step(b)
	}
}

func (l *LowLevelInterceptor) step(b byte) {
	switch l.st {
	case lowGround:
		if b == 0x1b {
			l.st = lowEscape
		}
	case lowEscape:
		switch b {
		case ']':
			l.str = l.str[:0]
			l.st = lowOSC
		default:
			l.st = lowGround
		}
	case lowOSC:
		switch b {
		case 0x07:
			l.dispatch(string(l.str))
			l.st = lowGround
		case 0x1b:
			l.st = lowOSCEsc
		default:
			l.str = append(l.str, b)
		}
	case lowOSCEsc:
		if b == '\\' {
			l.dispatch(string(l.str))
		}
		l.st = lowGround
	}
}

func (l *LowLevelInterceptor) dispatch(s string) {
	idx := strings.IndexByte(s, ';')
	code := s
	rest := ""
	if idx >= 0 {
		code = s[:idx]
		rest = s[idx+1:]
	}
	h := l.h
	switch code {
	case "7": // CWD report: OSC 7 ; file://host/path
		h.CWD = stripFileURI(rest)
		if h.OnCWDChange != nil {
			h.OnCWDChange(h.CWD)
		}
	case "9", "777": // desktop notification
		if h.OnNotification != nil {
			h.OnNotification("desktop", rest)
		}
	case "99": // iTerm2-style structured notification
		if h.OnNotification != nil {
			h.OnNotification("structured", rest)
		}
	case "133": // semantic prompt marker: A/B/C/D [;params]
		if rest == "" {
			return
		}
		kind := rest[0]
		params := ""
		if len(rest) > 1 && rest[1] == ';' {
			params = rest[2:]
		}
		if h.OnPromptMarker != nil {
			h.OnPromptMarker(kind, params)
		}
	}
}

func stripFileURI(s string) string {
	const prefix = "file://"
	if !strings.HasPrefix(s, prefix) {
		return s
	}
	rest := s[len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i:]
	}
	return rest
}
