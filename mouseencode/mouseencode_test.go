package mouseencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftHeldNeverReports(t *testing.T) {
	e := &Encoder{}
	got := e.Encode(Event{Button: ButtonLeft, Action: Press, Shift: true}, Modes{X10: true})
	assert.Nil(t, got)
}

func TestNoModeActiveNoReport(t *testing.T) {
	e := &Encoder{}
	got := e.Encode(Event{Button: ButtonLeft, Action: Press}, Modes{})
	assert.Nil(t, got)
}

func TestSGRPressAndRelease(t *testing.T) {
	e := &Encoder{}
	press := e.Encode(Event{Button: ButtonLeft, Action: Press, Row: 2, Col: 3}, Modes{SGR: true})
	assert.Equal(t, "\x1b[<0;4;3M", string(press))
	e2 := &Encoder{}
	release := e2.Encode(Event{Button: ButtonLeft, Action: Release, Row: 2, Col: 3}, Modes{SGR: true})
	assert.Equal(t, "\x1b[<0;4;3m", string(release))
}

func TestX10ClampsAt223(t *testing.T) {
	e := &Encoder{}
	got := e.Encode(Event{Button: ButtonLeft, Action: Press, Row: 300, Col: 300}, Modes{X10: true})
	require := []byte{0x1b, '[', 'M', 32, 223, 223}
	assert.Equal(t, require, got)
}

func TestMotionSuppressedWithoutButtonEventMode(t *testing.T) {
	e := &Encoder{}
	got := e.Encode(Event{Button: ButtonNone, Action: Motion, Row: 1, Col: 1}, Modes{X10: true})
	assert.Nil(t, got)
}

func TestMotionDedupSameCell(t *testing.T) {
	e := &Encoder{}
	modes := Modes{SGR: true, AnyEvent: true}
	first := e.Encode(Event{Button: ButtonNone, Action: Motion, Row: 1, Col: 1}, modes)
	second := e.Encode(Event{Button: ButtonNone, Action: Motion, Row: 1, Col: 1}, modes)
	third := e.Encode(Event{Button: ButtonNone, Action: Motion, Row: 1, Col: 2}, modes)
	assert.NotNil(t, first)
	assert.Nil(t, second)
	assert.NotNil(t, third)
}
