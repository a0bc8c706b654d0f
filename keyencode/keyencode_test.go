package keyencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCtrlLetterEncodesSameByteRegardlessOfShiftOrCase(t *testing.T) {
	cases := []Event{
		{Key: KeyChar, Rune: 'a', Mods: ModControl},
		{Key: KeyChar, Rune: 'A', Mods: ModControl},
		{Key: KeyChar, Rune: 'A', Mods: ModControl | ModShift},
	}
	for _, ev := range cases {
		got := Encode(ev, Mode{})
		assert.Equal(t, []byte{0x01}, got)
	}
}

func TestLegacyArrowKeysNoModifiers(t *testing.T) {
	got := Encode(Event{Key: KeyUp}, Mode{})
	assert.Equal(t, "\x1b[A", string(got))
}

func TestLegacyArrowKeysApplicationCursor(t *testing.T) {
	got := Encode(Event{Key: KeyUp}, Mode{ApplicationCursor: true})
	assert.Equal(t, "\x1bOA", string(got))
}

func TestLegacyArrowWithModifier(t *testing.T) {
	got := Encode(Event{Key: KeyRight, Mods: ModShift}, Mode{})
	assert.Equal(t, "\x1b[1;2C", string(got))
}

func TestLegacyTildeKey(t *testing.T) {
	got := Encode(Event{Key: KeyDelete}, Mode{})
	assert.Equal(t, "\x1b[3~", string(got))
}

func TestShiftTab(t *testing.T) {
	got := Encode(Event{Key: KeyTab, Mods: ModShift}, Mode{})
	assert.Equal(t, "\x1b[Z", string(got))
}

func TestLegacyModeIsPressOnly(t *testing.T) {
	got := Encode(Event{Key: KeyUp, Type: Release}, Mode{})
	assert.Nil(t, got)
}

func TestKittyPlainPrintableFallsBackToUTF8(t *testing.T) {
	got := Encode(Event{Key: KeyChar, Rune: 'q'}, Mode{Kitty: KittyDisambiguate})
	assert.Equal(t, "q", string(got))
}

func TestKittyReleaseSuppressedWithoutEventTypes(t *testing.T) {
	got := Encode(Event{Key: KeyUp, Type: Release}, Mode{Kitty: KittyDisambiguate})
	assert.Nil(t, got)
}

func TestKittyPressReleasePairDiffersOnlyInSuffix(t *testing.T) {
	mode := Mode{Kitty: KittyDisambiguate | KittyReportEventTypes}
	press := Encode(Event{Key: KeyUp, Type: Press}, mode)
	release := Encode(Event{Key: KeyUp, Type: Release}, mode)
	assert.Equal(t, "\x1b[57352u", string(press))
	assert.Equal(t, "\x1b[57352:3u", string(release))
}

func TestCtrlSpaceAndAtAndTwoProduceNUL(t *testing.T) {
	for _, r := range []rune{' ', '@', '2'} {
		got := Encode(Event{Key: KeyChar, Rune: r, Mods: ModControl}, Mode{})
		assert.Equal(t, []byte{0x00}, got, "rune %q", r)
	}
}

func TestCtrlEightProducesDEL(t *testing.T) {
	got := Encode(Event{Key: KeyChar, Rune: '8', Mods: ModControl}, Mode{})
	assert.Equal(t, []byte{0x7f}, got)
}

func TestAltPrefixesESC(t *testing.T) {
	got := Encode(Event{Key: KeyChar, Rune: 'x', Mods: ModAlt}, Mode{})
	assert.Equal(t, "\x1bx", string(got))
}
