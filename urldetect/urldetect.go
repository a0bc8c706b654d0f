// Package urldetect scans grid rows for scheme://... tokens, caching
// results by grid generation so an idle screen never re-scans. Grounded on
// the teacher's main.go urlAtCellRange (a single-row, single-cursor-cell
// scan run synchronously on every mouse-move with no cache at all),
// generalized into a cached, segment-based, hover-state design. Each row is
// scanned on its own: every match has exactly one segment, and a URL that
// soft-wraps onto the next row is not joined across the wrap.
package urldetect

import (
	"net/url"
	"strings"

	"github.com/oriterm/oriterm/selection"
)

// Segment is the row span a URL match covers.
type Segment struct {
	Row             int
	StartCol, EndCol int // EndCol exclusive
}

// Match is a detected URL plus its row segment; Scan produces exactly one
// segment per match.
type Match struct {
	URL      string
	Segments []Segment
}

// safeSchemes are the only schemes the opener will hand to the OS; others
// are logged and ignored per spec.md §4.7.
var safeSchemes = map[string]bool{"http": true, "https": true, "ftp": true, "file": true}

// trimLeft/trimRight mirror the teacher's bracket/punctuation trimming so a
// URL inside "(see http://example.com)" doesn't capture the trailing paren.
const trimLeftChars = "<>\"'()[]{}"
const trimRightChars = "<>\"'()[]{}.,;:!?"

// Cache holds the last scan's results keyed by the grid generation they
// were computed against; Scan recomputes only when the generation changes.
type Cache struct {
	generation uint64
	matches    []Match
	valid      bool
}

// Scan returns the cached match list if gen matches the last scan,
// otherwise rescans every absolute row via src and repopulates the cache.
func (c *Cache) Scan(src selection.Source, gen uint64) []Match {
	if c.valid && c.generation == gen {
		return c.matches
	}
	c.matches = scanAll(src)
	c.generation = gen
	c.valid = true
	return c.matches
}

// Invalidate forces the next Scan to recompute regardless of generation —
// used when the viewport's absolute-row mapping changes in a way the grid
// generation counter doesn't track (e.g. scrollback eviction).
func (c *Cache) Invalidate() { c.valid = false }

func scanAll(src selection.Source) []Match {
	var out []Match
	for row := 0; row < src.AbsoluteRowCount(); row++ {
		out = append(out, scanRow(src, row)...)
	}
	return out
}

func scanRow(src selection.Source, row int) []Match {
	r := src.AbsoluteRow(row)
	line := make([]rune, len(r.Cells))
	for i, c := range r.Cells {
		if c.IsSpacer() {
			line[i] = 0
			continue
		}
		if c.Char == 0 {
			line[i] = ' '
		} else {
			line[i] = c.Char
		}
	}

	var out []Match
	col := 0
	for col < len(line) {
		if line[col] == ' ' || line[col] == 0 {
			col++
			continue
		}
		start := col
		for col < len(line) && line[col] != ' ' && line[col] != 0 {
			col++
		}
		end := col // exclusive
		for start < end && strings.ContainsRune(trimLeftChars, line[start]) {
			start++
		}
		for end > start && strings.ContainsRune(trimRightChars, line[end-1]) {
			end--
		}
		if start >= end {
			continue
		}
		token := string(line[start:end])
		target := token
		if strings.HasPrefix(target, "www.") {
			target = "http://" + target
		}
		if !strings.Contains(target, "://") {
			continue
		}
		parsed, err := url.Parse(target)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			continue
		}
		out = append(out, Match{
			URL:      target,
			Segments: []Segment{{Row: row, StartCol: start, EndCol: end}},
		})
	}
	return out
}

// At returns the match (if any) whose segment covers (row, col).
func At(matches []Match, row, col int) (Match, bool) {
	for _, m := range matches {
		for _, seg := range m.Segments {
			if seg.Row == row && col >= seg.StartCol && col < seg.EndCol {
				return m, true
			}
		}
	}
	return Match{}, false
}

// HoverState tracks which match the pointer currently sits over, for the
// renderer's underline-on-hover behavior.
type HoverState struct {
	Match  Match
	Active bool
}

// UpdateHover recomputes hover state for a pointer at (row, col).
func UpdateHover(matches []Match, row, col int) HoverState {
	if m, ok := At(matches, row, col); ok {
		return HoverState{Match: m, Active: true}
	}
	return HoverState{}
}

// Opener opens a URL with the OS-native handler; swapped out in tests.
type Opener func(target string) error

// Open invokes opener for target if its scheme is in the safe allowlist,
// returning an error that callers should log-and-ignore rather than
// surface to the user (spec.md §4.7: "other schemes logged and ignored").
func Open(target string, opener Opener) error {
	parsed, err := url.Parse(target)
	if err != nil {
		return err
	}
	if !safeSchemes[strings.ToLower(parsed.Scheme)] {
		return &UnsafeSchemeError{Scheme: parsed.Scheme}
	}
	return opener(target)
}

// UnsafeSchemeError reports a URL whose scheme isn't in the safe allowlist.
type UnsafeSchemeError struct{ Scheme string }

func (e *UnsafeSchemeError) Error() string {
	return "urldetect: refusing to open unsafe scheme " + e.Scheme
}
