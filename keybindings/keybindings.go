// Package keybindings classifies a GLFW key event as either an
// application-level Action (new tab, close tab, scroll, fullscreen...) or
// plain terminal input, and for the latter translates the GLFW key into a
// keyencode.Event so the actual PTY byte encoding lives in one place
// (keyencode handles both legacy xterm and Kitty protocol output; this
// package no longer encodes anything itself).
package keybindings

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/oriterm/oriterm/keyencode"
)

// Action represents an application-level action bound to a key chord,
// independent of any particular tab's terminal state.
type Action int

const (
	ActionNone Action = iota
	ActionExit
	ActionInput
	ActionScrollUp
	ActionScrollDown
	ActionScrollUpLine
	ActionScrollDownLine
	ActionNewTab
	ActionCloseTab
	ActionNextTab
	ActionPrevTab
	ActionToggleFullscreen
	ActionCopy
	ActionPaste
	ActionFind
	ActionToggleMenu
)

// Result is the outcome of classifying a key press: either an Action to
// perform directly, or an Event to hand to keyencode.Encode for ActionInput.
type Result struct {
	Action Action
	Event  keyencode.Event
}

var glfwToKey = map[glfw.Key]keyencode.Key{
	glfw.KeyUp: keyencode.KeyUp, glfw.KeyDown: keyencode.KeyDown,
	glfw.KeyRight: keyencode.KeyRight, glfw.KeyLeft: keyencode.KeyLeft,
	glfw.KeyHome: keyencode.KeyHome, glfw.KeyEnd: keyencode.KeyEnd,
	glfw.KeyPageUp: keyencode.KeyPageUp, glfw.KeyPageDown: keyencode.KeyPageDown,
	glfw.KeyInsert: keyencode.KeyInsert, glfw.KeyDelete: keyencode.KeyDelete,
	glfw.KeyBackspace: keyencode.KeyBackspace, glfw.KeyTab: keyencode.KeyTab,
	glfw.KeyEnter: keyencode.KeyEnter, glfw.KeyKPEnter: keyencode.KeyKPEnter,
	glfw.KeyEscape: keyencode.KeyEscape,
	glfw.KeyF1:     keyencode.KeyF1, glfw.KeyF2: keyencode.KeyF2,
	glfw.KeyF3: keyencode.KeyF3, glfw.KeyF4: keyencode.KeyF4,
	glfw.KeyF5: keyencode.KeyF5, glfw.KeyF6: keyencode.KeyF6,
	glfw.KeyF7: keyencode.KeyF7, glfw.KeyF8: keyencode.KeyF8,
	glfw.KeyF9: keyencode.KeyF9, glfw.KeyF10: keyencode.KeyF10,
	glfw.KeyF11: keyencode.KeyF11, glfw.KeyF12: keyencode.KeyF12,
	glfw.KeyKPDivide: keyencode.KeyKPDivide, glfw.KeyKPMultiply: keyencode.KeyKPMultiply,
	glfw.KeyKPSubtract: keyencode.KeyKPSubtract, glfw.KeyKPAdd: keyencode.KeyKPAdd,
	glfw.KeyKPDecimal: keyencode.KeyKPDecimal,
	glfw.KeyKP0:       keyencode.KeyKP0, glfw.KeyKP1: keyencode.KeyKP1,
	glfw.KeyKP2: keyencode.KeyKP2, glfw.KeyKP3: keyencode.KeyKP3,
	glfw.KeyKP4: keyencode.KeyKP4, glfw.KeyKP5: keyencode.KeyKP5,
	glfw.KeyKP6: keyencode.KeyKP6, glfw.KeyKP7: keyencode.KeyKP7,
	glfw.KeyKP8: keyencode.KeyKP8, glfw.KeyKP9: keyencode.KeyKP9,
}

// mods converts GLFW's modifier bitset to keyencode's, preserving the
// shift-alt-control-super bit order spec.md requires.
func mods(m glfw.ModifierKey) keyencode.Mods {
	var out keyencode.Mods
	if m&glfw.ModShift != 0 {
		out |= keyencode.ModShift
	}
	if m&glfw.ModAlt != 0 {
		out |= keyencode.ModAlt
	}
	if m&glfw.ModControl != 0 {
		out |= keyencode.ModControl
	}
	if m&glfw.ModSuper != 0 {
		out |= keyencode.ModSuper
	}
	return out
}

// Classify inspects a GLFW key press and reports either a bound Action or a
// keyencode.Event to forward to the active tab's PTY. Application shortcuts
// are checked first so they take priority over any terminal meaning the
// same chord might otherwise have.
func Classify(key glfw.Key, glfwMods glfw.ModifierKey) Result {
	ctrl := glfwMods&glfw.ModControl != 0
	shift := glfwMods&glfw.ModShift != 0

	switch {
	case ctrl && key == glfw.KeyQ:
		return Result{Action: ActionExit}
	case ctrl && shift && key == glfw.KeyT:
		return Result{Action: ActionNewTab}
	case ctrl && shift && key == glfw.KeyX:
		return Result{Action: ActionCloseTab}
	case ctrl && shift && key == glfw.KeyC:
		return Result{Action: ActionCopy}
	case ctrl && shift && key == glfw.KeyV:
		return Result{Action: ActionPaste}
	case ctrl && shift && key == glfw.KeyF:
		return Result{Action: ActionFind}
	case ctrl && key == glfw.KeyTab:
		if shift {
			return Result{Action: ActionPrevTab}
		}
		return Result{Action: ActionNextTab}
	case shift && key == glfw.KeyPageUp:
		return Result{Action: ActionScrollUp}
	case shift && key == glfw.KeyPageDown:
		return Result{Action: ActionScrollDown}
	case shift && key == glfw.KeyUp:
		return Result{Action: ActionScrollUpLine}
	case shift && key == glfw.KeyDown:
		return Result{Action: ActionScrollDownLine}
	case shift && (key == glfw.KeyEnter || key == glfw.KeyKPEnter):
		return Result{Action: ActionToggleFullscreen}
	case ctrl && key == glfw.KeyGraveAccent:
		return Result{Action: ActionToggleMenu}
	}

	if key == glfw.KeySpace {
		if ctrl {
			return Result{Action: ActionInput, Event: keyencode.Event{Key: keyencode.KeyChar, Rune: ' ', Mods: mods(glfwMods)}}
		}
		// Plain space arrives through the char callback instead, to avoid
		// double input.
		return Result{Action: ActionNone}
	}

	if ek, ok := glfwToKey[key]; ok {
		return Result{Action: ActionInput, Event: keyencode.Event{Key: ek, Mods: mods(glfwMods)}}
	}

	if alt := glfwMods&glfw.ModAlt != 0; alt && key >= glfw.KeyA && key <= glfw.KeyZ {
		c := rune(key-glfw.KeyA) + 'a'
		if shift {
			c = rune(key-glfw.KeyA) + 'A'
		}
		return Result{Action: ActionInput, Event: keyencode.Event{Key: keyencode.KeyChar, Rune: c, Mods: mods(glfwMods)}}
	}

	if ctrl && key >= glfw.KeyA && key <= glfw.KeyZ {
		c := rune(key-glfw.KeyA) + 'a'
		return Result{Action: ActionInput, Event: keyencode.Event{Key: keyencode.KeyChar, Rune: c, Mods: mods(glfwMods)}}
	}

	return Result{Action: ActionNone}
}

// ClassifyChar builds the keyencode.Event for a character delivered via
// GLFW's char callback (used for printable runes outside the key callback's
// named-key set, so IME/dead-key composition and shifted symbols land
// correctly).
func ClassifyChar(r rune, glfwMods glfw.ModifierKey) keyencode.Event {
	return keyencode.Event{Key: keyencode.KeyChar, Rune: r, Mods: mods(glfwMods) &^ keyencode.ModShift}
}
