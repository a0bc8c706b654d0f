package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidBitmap(w, h int) Bitmap {
	return Bitmap{Width: w, Height: h, Pixels: make([]byte, w*h), Advance: float64(w)}
}

func TestLookupCachesOnSecondCall(t *testing.T) {
	a := New()
	calls := 0
	raster := func(Key) Bitmap {
		calls++
		return solidBitmap(8, 8)
	}
	key := Key{GlyphID: 1, SizeQ6: SizeToQ6(12)}

	e1 := a.Lookup(key, raster)
	e2 := a.Lookup(key, raster)

	assert.Equal(t, 1, calls)
	assert.Equal(t, e1, e2)
}

func TestLookupEmptyBitmapCachedAsEmpty(t *testing.T) {
	a := New()
	raster := func(Key) Bitmap { return Bitmap{} }
	e := a.Lookup(Key{GlyphID: 2}, raster)
	assert.True(t, e.Empty)
	assert.Equal(t, 0, a.PageCount())
}

func TestUploadAllocatesFirstPageLazily(t *testing.T) {
	a := New()
	assert.Equal(t, 0, a.PageCount())
	a.Lookup(Key{GlyphID: 3}, func(Key) Bitmap { return solidBitmap(16, 16) })
	assert.Equal(t, 1, a.PageCount())
}

func TestDistinctSizeQ6KeysDontCollide(t *testing.T) {
	a := New()
	calls := 0
	raster := func(Key) Bitmap { calls++; return solidBitmap(4, 4) }
	a.Lookup(Key{GlyphID: 1, SizeQ6: SizeToQ6(12.0)}, raster)
	a.Lookup(Key{GlyphID: 1, SizeQ6: SizeToQ6(12.5)}, raster)
	assert.Equal(t, 2, calls)
}

func TestClearDropsAllPagesAndEntries(t *testing.T) {
	a := New()
	a.Lookup(Key{GlyphID: 1}, func(Key) Bitmap { return solidBitmap(8, 8) })
	require.Equal(t, 1, a.PageCount())
	a.Clear()
	assert.Equal(t, 0, a.PageCount())
}

func TestPackerInsertNonOverlapping(t *testing.T) {
	p := newPacker(64, 64)
	x1, y1, ok1 := p.Insert(30, 20)
	x2, y2, ok2 := p.Insert(30, 20)
	require.True(t, ok1)
	require.True(t, ok2)
	r1 := rect{x1, y1, 30, 20}
	r2 := rect{x2, y2, 30, 20}
	assert.False(t, overlaps(r1, r2), "placed rectangles must not overlap: %+v vs %+v", r1, r2)
}

func overlaps(a, b rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPackerRejectsOversizedInsert(t *testing.T) {
	p := newPacker(16, 16)
	_, _, ok := p.Insert(32, 8)
	assert.False(t, ok)
}

func TestEvictionResetsLRUPageAndDropsItsEntries(t *testing.T) {
	a := New()
	// Fill pages to MaxPages with glyphs that each consume a whole page,
	// forcing every subsequent insert to evict.
	full := func(Key) Bitmap { return solidBitmap(PageSize, PageSize) }
	keys := make([]Key, 0, MaxPages+2)
	for i := 0; i < MaxPages+2; i++ {
		k := Key{GlyphID: uint32(i)}
		keys = append(keys, k)
		a.Lookup(k, full)
		a.BeginFrame()
	}
	assert.Equal(t, MaxPages, a.PageCount())
	// The earliest keys should have been evicted; looking them up again
	// must re-rasterize rather than returning stale stale data.
	_, stillCached := a.entries[keys[0]]
	assert.False(t, stillCached)
}

func TestTakeDirtyPagesReturnsWrittenPagesOnceEach(t *testing.T) {
	a := New()
	a.Lookup(Key{GlyphID: 1}, func(Key) Bitmap { return solidBitmap(8, 8) })
	dirty := a.TakeDirtyPages()
	assert.Equal(t, []int{0}, dirty)
	assert.Empty(t, a.TakeDirtyPages())

	a.Lookup(Key{GlyphID: 2}, func(Key) Bitmap { return solidBitmap(8, 8) })
	assert.Equal(t, []int{0}, a.TakeDirtyPages())
}

func TestTouchUpdatesLastUsedOnLookup(t *testing.T) {
	a := New()
	k := Key{GlyphID: 1}
	a.Lookup(k, func(Key) Bitmap { return solidBitmap(8, 8) })
	a.BeginFrame()
	a.BeginFrame()
	a.Lookup(k, func(Key) Bitmap { return solidBitmap(8, 8) })
	assert.Equal(t, a.frame, a.pages[0].lastUsed)
}
