// Package atlas implements the renderer's multi-page glyph cache: a
// grayscale-alpha texture array packed by a Guillotine bin packer with
// best-short-side-fit placement, evicted page-at-a-time by least-recent
// use. Grounded on the teacher's render.go glyph cache (a flat map keyed by
// rune+size with no eviction or packing at all) generalized to the bounded,
// multi-page, face-aware cache spec.md §4.3 describes.
package atlas

// PageSize is the fixed square dimension of every atlas page in texels.
const PageSize = 2048

// MaxPages bounds total atlas memory: MaxPages * PageSize^2 * 1 byte/texel
// (grayscale alpha) = 16 MiB at the defaults.
const MaxPages = 4

// Key identifies one cached glyph. SizeQ6 is the font size in 26.6
// fixed-point (round(size_pt * 64)), which avoids float-rounding
// collisions between glyphs requested at fractional DPI scales that would
// otherwise hash to "the same" size and silently share a wrong bitmap.
type Key struct {
	GlyphID     uint32
	FaceIndex   int
	SizeQ6      int32
	Collection  uint8 // discriminates distinct font collections sharing glyph-ID space
}

// SizeToQ6 converts a point size to the 26.6 fixed-point key field.
func SizeToQ6(sizePt float64) int32 { return int32(sizePt*64 + 0.5) }

// Bitmap is a rasterizer's output for one glyph: a tightly-cropped
// grayscale-alpha bitmap plus the metrics needed to position it relative
// to the cell origin.
type Bitmap struct {
	Width, Height int
	Pixels        []byte // Width*Height bytes, row-major, alpha only

	// Metrics, in pixels, relative to the cell's pen origin.
	BearingX, BearingY float64
	Advance            float64
}

// Entry is what Lookup returns: the glyph's UV rect within its page (in
// atlas-normalized 0..1 coordinates) plus its metrics and page index.
type Entry struct {
	Page             int
	UVPos, UVSize    [2]float32
	BearingX, BearingY float64
	Advance          float64
	Empty            bool // true for whitespace/zero-bitmap glyphs
}

// Rasterize is called on a cache miss to produce the bitmap for key. An
// empty (zero Width/Height) bitmap is cached as an Empty entry rather than
// re-rasterized every lookup.
type Rasterize func(key Key) Bitmap

// Atlas owns its pages (allocated on demand up to MaxPages) and the
// glyph-keyed lookup table.
type Atlas struct {
	pages   []*page
	entries map[Key]Entry
	frame   uint64
}

// New builds an empty atlas with no pages allocated yet; the first upload
// allocates page 0.
func New() *Atlas {
	return &Atlas{entries: make(map[Key]Entry)}
}

// BeginFrame increments the atlas-wide frame counter the LRU eviction
// policy reads; call this once per rendered frame, before any Lookup.
func (a *Atlas) BeginFrame() { a.frame++ }

// Clear invalidates every page and entry — used on font-size or DPI
// change, where every previously-packed glyph is the wrong size.
func (a *Atlas) Clear() {
	a.pages = nil
	a.entries = make(map[Key]Entry)
}

// Lookup returns the cached entry for key, rasterizing and packing it on a
// miss via raster. It never fails: if every page is full and the eviction
// pass still can't make room (the glyph bitmap is larger than a whole
// page), it returns an Empty entry rather than panicking.
func (a *Atlas) Lookup(key Key, raster Rasterize) Entry {
	if e, ok := a.entries[key]; ok {
		a.touch(e.Page)
		return e
	}
	bmp := raster(key)
	if bmp.Width == 0 || bmp.Height == 0 {
		e := Entry{Empty: true, BearingX: bmp.BearingX, BearingY: bmp.BearingY, Advance: bmp.Advance}
		a.entries[key] = e
		return e
	}
	e := a.upload(bmp)
	a.entries[key] = e
	return e
}

func (a *Atlas) touch(pageIdx int) {
	if pageIdx >= 0 && pageIdx < len(a.pages) {
		a.pages[pageIdx].lastUsed = a.frame
	}
}

// upload finds room for bmp across existing pages, allocates a new page if
// under MaxPages, or evicts the LRU page and retries — matching spec.md
// §4.3's "try existing, then allocate, then evict" upload order exactly.
func (a *Atlas) upload(bmp Bitmap) Entry {
	for i, p := range a.pages {
		if x, y, ok := p.packer.Insert(bmp.Width, bmp.Height); ok {
			return a.place(i, p, x, y, bmp)
		}
	}
	if len(a.pages) < MaxPages {
		p := newPage()
		a.pages = append(a.pages, p)
		idx := len(a.pages) - 1
		if x, y, ok := p.packer.Insert(bmp.Width, bmp.Height); ok {
			return a.place(idx, p, x, y, bmp)
		}
		// A bitmap wider/taller than a whole fresh page can't be placed at all.
		return Entry{Empty: true}
	}
	lru := a.evictLRU()
	if lru < 0 {
		return Entry{Empty: true}
	}
	p := a.pages[lru]
	if x, y, ok := p.packer.Insert(bmp.Width, bmp.Height); ok {
		return a.place(lru, p, x, y, bmp)
	}
	return Entry{Empty: true}
}

func (a *Atlas) place(idx int, p *page, x, y int, bmp Bitmap) Entry {
	p.write(x, y, bmp.Width, bmp.Height, bmp.Pixels)
	p.lastUsed = a.frame
	return Entry{
		Page:     idx,
		UVPos:    [2]float32{float32(x) / PageSize, float32(y) / PageSize},
		UVSize:   [2]float32{float32(bmp.Width) / PageSize, float32(bmp.Height) / PageSize},
		BearingX: bmp.BearingX,
		BearingY: bmp.BearingY,
		Advance:  bmp.Advance,
	}
}

// evictLRU resets the least-recently-used page's packer and drops every
// entry pointing at it, returning its index, or -1 if there are no pages
// at all yet.
func (a *Atlas) evictLRU() int {
	if len(a.pages) == 0 {
		return -1
	}
	lru := 0
	for i, p := range a.pages {
		if p.lastUsed < a.pages[lru].lastUsed {
			lru = i
		}
	}
	a.pages[lru] = newPage()
	for k, e := range a.entries {
		if e.Page == lru {
			delete(a.entries, k)
		}
	}
	return lru
}

// PageCount reports how many pages are currently allocated, for renderer
// diagnostics and tests.
func (a *Atlas) PageCount() int { return len(a.pages) }

// PagePixels exposes one page's raw texel buffer for GPU upload.
func (a *Atlas) PagePixels(idx int) []byte {
	if idx < 0 || idx >= len(a.pages) {
		return nil
	}
	return a.pages[idx].pixels
}

// TakeDirtyPages returns the indices of every page written to since the
// last call, clearing their dirty bit, so the renderer re-uploads only the
// GPU textures that actually changed this frame.
func (a *Atlas) TakeDirtyPages() []int {
	var dirty []int
	for i, p := range a.pages {
		if p.dirty {
			dirty = append(dirty, i)
			p.dirty = false
		}
	}
	return dirty
}
