package vtparser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriterm/oriterm/cell"
	"github.com/oriterm/oriterm/grid"
	"github.com/oriterm/oriterm/palette"
)

func newSession(cols, lines int) (*Session, *grid.Grid, *bytes.Buffer) {
	g := grid.New(cols, lines)
	pal := palette.FromScheme("oriterm-blue")
	var out bytes.Buffer
	h := NewHandler(g, pal, &out)
	return NewSession(h), g, &out
}

func TestHelloCarriageReturnOverwrite(t *testing.T) {
	s, g, _ := newSession(10, 3)
	s.Write([]byte("hello\rworld"))
	row := g.Row(0)
	require.NotNil(t, row)
	assert.Equal(t, byte('w'), byte(row.Cells[0].Char))
	assert.Equal(t, 5, g.Cursor().Col)
}

func TestAltScreenSaveRestore(t *testing.T) {
	s, g, _ := newSession(10, 3)
	s.Write([]byte("\x1b[?1049h"))
	require.True(t, g.IsAlt())
	s.Write([]byte("X"))
	s.Write([]byte("\x1b[?1049l"))
	require.False(t, g.IsAlt())
	row := g.Row(0)
	require.NotNil(t, row)
	assert.NotEqual(t, 'X', row.Cells[0].Char)
}

func TestScrollRegionCSI(t *testing.T) {
	s, g, _ := newSession(5, 5)
	s.Write([]byte("\x1b[2;4r")) // rows 1-3 0-based
	top, bottom := g.ScrollRegion()
	assert.Equal(t, 1, top)
	assert.Equal(t, 3, bottom)
}

func TestCursorPositionReportRoundTrip(t *testing.T) {
	s, g, out := newSession(10, 5)
	g.Goto(2, 3)
	out.Reset()
	s.Write([]byte("\x1b[6n"))
	assert.Equal(t, "\x1b[3;4R", out.String())
}

func TestSGRResetRestoresDefaultTemplate(t *testing.T) {
	s, g, _ := newSession(10, 5)
	s.Write([]byte("\x1b[1;31m"))
	assert.NotEqual(t, cell.Cell{}, *g.TemplateRef())
	s.Write([]byte("\x1b[0m"))
	assert.Equal(t, cell.Cell{}, *g.TemplateRef())
}

func TestUnknownOSCLeavesStateUnchanged(t *testing.T) {
	s, g, _ := newSession(10, 5)
	before := g.Cursor()
	s.Write([]byte("\x1b]1337;SetMark\x07"))
	assert.Equal(t, before, g.Cursor())
}

func TestSGRTrueColorForeground(t *testing.T) {
	s, g, _ := newSession(10, 5)
	s.Write([]byte("\x1b[38;2;10;20;30m"))
	fg := g.TemplateRef().Fg
	assert.Equal(t, cell.ColorRGB, fg.Kind)
	assert.Equal(t, uint8(10), fg.R)
	assert.Equal(t, uint8(20), fg.G)
	assert.Equal(t, uint8(30), fg.B)
}

func TestKittyPushQueryPop(t *testing.T) {
	s, _, out := newSession(10, 5)
	s.Write([]byte("\x1b[>5u"))
	out.Reset()
	s.Write([]byte("\x1b[?u"))
	assert.Equal(t, "\x1b[?5u", out.String())
	s.Write([]byte("\x1b[<u"))
	out.Reset()
	s.Write([]byte("\x1b[?u"))
	assert.Equal(t, "\x1b[?0u", out.String())
}

func TestOSC7UpdatesCWD(t *testing.T) {
	s, _, _ := newSession(10, 5)
	var got string
	s.Handler.OnCWDChange = func(cwd string) { got = cwd }
	s.Write([]byte("\x1b]7;file://host/home/user/project\x07"))
	assert.Equal(t, "/home/user/project", got)
}

func TestOSC133PromptMarker(t *testing.T) {
	s, _, _ := newSession(10, 5)
	var kind byte
	s.Handler.OnPromptMarker = func(k byte, params string) { kind = k }
	s.Write([]byte("\x1b]133;A\x07"))
	assert.Equal(t, byte('A'), kind)
}

func TestTitleSetAndPushPop(t *testing.T) {
	s, _, _ := newSession(10, 5)
	s.Write([]byte("\x1b]0;first\x07"))
	assert.Equal(t, "first", s.Handler.Title)
	s.Write([]byte("\x1b[22t")) // not title-stack push (that's OSC 22), no-op here
	s.Write([]byte("\x1b]22;\x07"))
	s.Write([]byte("\x1b]0;second\x07"))
	assert.Equal(t, "second", s.Handler.Title)
	s.Write([]byte("\x1b]23;\x07"))
	assert.Equal(t, "first", s.Handler.Title)
}

func TestWideCharWrap(t *testing.T) {
	s, g, _ := newSession(5, 5)
	for i := 0; i < 4; i++ {
		s.Write([]byte("\xe4\xbd\xa0")) // 你, wide
	}
	for r := 0; r < 4; r++ {
		row := g.Row(r)
		require.NotNil(t, row)
		assert.True(t, row.Cells[0].IsWide())
		assert.True(t, row.Cells[1].IsSpacer())
	}
}

func TestBracketedPasteMode(t *testing.T) {
	s, _, _ := newSession(10, 5)
	s.Write([]byte("\x1b[?2004h"))
	assert.True(t, s.Handler.Modes.BracketedPaste)
	s.Write([]byte("\x1b[?2004l"))
	assert.False(t, s.Handler.Modes.BracketedPaste)
}
