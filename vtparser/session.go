package vtparser

// Session pairs the high-level Parser with the LowLevelInterceptor over a
// shared Handler, advancing both across every byte batch so neither can
// fall behind the other or see a different view of the stream.
type Session struct {
	Handler  *Handler
	high     *Parser
	low      *LowLevelInterceptor
}

// NewSession builds a session that drives both parsers over h.
func NewSession(h *Handler) *Session {
	return &Session{
		Handler: h,
		high:    NewParser(h),
		low:     NewLowLevelInterceptor(h),
	}
}

// Write feeds a batch of PTY output bytes through both parsers.
func (s *Session) Write(data []byte) {
	s.low.Feed(data)
	s.high.Feed(data)
}
