package atlas

// page is one atlas texture: a pixel buffer plus its free-rectangle list.
type page struct {
	pixels   []byte // PageSize*PageSize, row-major, 1 byte/texel
	packer   *packer
	lastUsed uint64
	dirty    bool // true since the last time the renderer re-uploaded this page's GPU texture
}

func newPage() *page {
	return &page{
		pixels: make([]byte, PageSize*PageSize),
		packer: newPacker(PageSize, PageSize),
		dirty:  true,
	}
}

func (p *page) write(x, y, w, h int, pixels []byte) {
	for row := 0; row < h; row++ {
		src := pixels[row*w : row*w+w]
		dstOff := (y+row)*PageSize + x
		copy(p.pixels[dstOff:dstOff+w], src)
	}
	p.dirty = true
}

// rect is an axis-aligned free or placed rectangle within a page.
type rect struct {
	X, Y, W, H int
}

// packer is a Guillotine bin packer using best-short-side-fit placement:
// for each insertion it scans every free rectangle, and among those that
// fit, picks the one minimising the shorter leftover side (ties broken by
// the longer leftover side), then splits that rectangle along its shorter
// leftover axis into up to two children that replace it in the free list.
type packer struct {
	free []rect
}

func newPacker(w, h int) *packer {
	return &packer{free: []rect{{0, 0, w, h}}}
}

// Insert finds room for a w x h rectangle and returns its top-left corner.
func (p *packer) Insert(w, h int) (x, y int, ok bool) {
	best := -1
	var bestShort, bestLong int
	for i, f := range p.free {
		if w > f.W || h > f.H {
			continue
		}
		leftoverW := f.W - w
		leftoverH := f.H - h
		short, long := leftoverW, leftoverH
		if short > long {
			short, long = long, short
		}
		if best < 0 || short < bestShort || (short == bestShort && long < bestLong) {
			best = i
			bestShort, bestLong = short, long
		}
	}
	if best < 0 {
		return 0, 0, false
	}

	chosen := p.free[best]
	p.free = append(p.free[:best], p.free[best+1:]...)
	p.split(chosen, w, h)
	return chosen.X, chosen.Y, true
}

// split divides chosen, after placing a w x h rectangle at its origin,
// along whichever leftover axis is shorter, producing up to two children
// that exactly tile chosen minus the placed rectangle.
func (p *packer) split(chosen rect, w, h int) {
	leftoverW := chosen.W - w
	leftoverH := chosen.H - h

	var right, bottom rect
	var haveRight, haveBottom bool

	if leftoverW <= leftoverH {
		// Split vertically first: right strip spans the placed rect's height,
		// bottom strip spans the full chosen width.
		if leftoverW > 0 {
			right = rect{chosen.X + w, chosen.Y, leftoverW, h}
			haveRight = true
		}
		if leftoverH > 0 {
			bottom = rect{chosen.X, chosen.Y + h, chosen.W, leftoverH}
			haveBottom = true
		}
	} else {
		if leftoverH > 0 {
			bottom = rect{chosen.X, chosen.Y + h, w, leftoverH}
			haveBottom = true
		}
		if leftoverW > 0 {
			right = rect{chosen.X + w, chosen.Y, leftoverW, chosen.H}
			haveRight = true
		}
	}
	if haveRight {
		p.free = append(p.free, right)
	}
	if haveBottom {
		p.free = append(p.free, bottom)
	}
}
