// Package render turns a frame's worth of tab/grid/menu/selection state
// into two (optionally three) instanced GPU draw calls, grounded on the
// teacher's render.Renderer (a per-glyph immediate-mode draw loop over a
// single font atlas texture) but restructured around spec.md §4.4's
// instanced bg/fg/overlay pipelines, damage tracking, and built-in
// box-drawing/block/braille/Powerline decomposition instead of sampling
// those ranges from the font.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/oriterm/oriterm/atlas"
	"github.com/oriterm/oriterm/cell"
	"github.com/oriterm/oriterm/fonts"
	"github.com/oriterm/oriterm/grid"
	"github.com/oriterm/oriterm/menu"
	"github.com/oriterm/oriterm/palette"
	"github.com/oriterm/oriterm/search"
	"github.com/oriterm/oriterm/selection"
	"github.com/oriterm/oriterm/tabs"
	"github.com/oriterm/oriterm/urldetect"
	"github.com/oriterm/oriterm/vtparser"
)

// Dirty is the aggregate damage bitmask spec.md §4.4 names: grid content,
// tab bar, cursor blink, bell animation, drag animation, and scale factor.
// DrawFrame skips the frame entirely when nothing is set.
type Dirty uint32

const (
	DirtyGrid Dirty = 1 << iota
	DirtyTabBar
	DirtyCursorBlink
	DirtyBell
	DirtyDrag
	DirtyScale
)

const defaultFontSizePt = 14.0

// FrameParams is everything DrawFrame needs to build one frame's instances.
// It carries no GLFW or window-package type so render stays decoupled from
// window construction; main wires GetFramebufferSize into Width/Height.
type FrameParams struct {
	Width, Height int
	Tabs          *tabs.Manager
	Palette       *palette.Palette
	CursorVisible bool
	Menu          *menu.Menu
	Selection     selection.Selection
	Search        *search.State
	Hover         urldetect.HoverState
	TabBarHeight  float32
}

// Renderer owns the GPU resources (shader program, quad/instance buffers,
// atlas page textures) and per-frame damage state.
type Renderer struct {
	theme       Theme
	fontSizePt  float64
	minContrast float64

	faces   map[uint8]font.Face
	fontTTF map[uint8][]byte
	atl     *atlas.Atlas
	cellW   float32
	cellH   float32

	program      uint32
	projLoc      int32
	texLoc       int32
	bgVAO, bgVBO uint32
	fgVAO, fgVBO uint32
	ovVAO, ovVBO uint32
	quadVBO      uint32
	texPages     [atlas.MaxPages]uint32

	dirty Dirty

	lastBG        []Instance
	lastCursorIdx int
}

// style discriminates regular/bold faces sharing the atlas's glyph-ID space
// via Key.Collection.
const (
	styleRegular uint8 = iota
	styleBold
)

// New builds the renderer's GL resources and loads the default font.
func New() (*Renderer, error) {
	r := &Renderer{
		theme:         ThemeByName("oriterm-blue"),
		fontSizePt:    defaultFontSizePt,
		minContrast:   1.0,
		faces:         make(map[uint8]font.Face),
		fontTTF:       make(map[uint8][]byte),
		atl:           atlas.New(),
		lastCursorIdx: -1,
	}
	if err := r.initGL(); err != nil {
		return nil, err
	}
	r.fontTTF[styleRegular] = fonts.DefaultFont()
	if bold, ok := fonts.GetFont("go-mono-bold"); ok {
		r.fontTTF[styleBold] = bold
	} else {
		r.fontTTF[styleBold] = fonts.DefaultFont()
	}
	if err := r.rebuildFaces(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTheme applies a named palette scheme's derived UI-chrome colors.
func (r *Renderer) SetTheme(name string) {
	r.theme = ThemeByName(name)
	r.MarkDirty(DirtyTabBar | DirtyGrid)
}

// SetMinContrast overrides the WCAG contrast floor the foreground pipeline
// enforces between glyph and cell background (config colors.minimum_contrast).
func (r *Renderer) SetMinContrast(ratio float64) { r.minContrast = ratio }

// MarkDirty ORs flags into the pending damage mask.
func (r *Renderer) MarkDirty(flags Dirty) { r.dirty |= flags }

// CellSize reports the current glyph cell dimensions in pixels.
func (r *Renderer) CellSize() (float32, float32) { return r.cellW, r.cellH }

// SetFontSize changes the grid font size in points and rebuilds faces and
// the atlas (every previously packed glyph is now the wrong size).
func (r *Renderer) SetFontSize(pt float64) error {
	if pt < 6 {
		pt = 6
	}
	if pt > 96 {
		pt = 96
	}
	r.fontSizePt = pt
	r.atl.Clear()
	if err := r.rebuildFaces(); err != nil {
		return err
	}
	r.MarkDirty(DirtyGrid | DirtyTabBar | DirtyScale)
	return nil
}

func (r *Renderer) rebuildFaces() error {
	for style, data := range r.fontTTF {
		parsed, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("render: parse font: %w", err)
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    r.fontSizePt,
			DPI:     96,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("render: build face: %w", err)
		}
		r.faces[style] = face
		if style == styleRegular {
			metrics := face.Metrics()
			r.cellH = float32((metrics.Ascent + metrics.Descent).Ceil())
			adv, _ := face.GlyphAdvance('M')
			r.cellW = float32(adv.Ceil())
		}
	}
	return nil
}

// rasterize is the atlas.Rasterize callback: it renders one rune at the
// current font size into a tightly cropped alpha bitmap via the style
// face's own glyph mask, so hinting/anti-aliasing matches what the font
// would have produced directly.
func (r *Renderer) rasterize(key atlas.Key) atlas.Bitmap {
	face, ok := r.faces[key.Collection]
	if !ok {
		face = r.faces[styleRegular]
	}
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, rune(key.GlyphID))
	if !ok || dr.Dx() <= 0 || dr.Dy() <= 0 {
		return atlas.Bitmap{Advance: fixed26ToFloat(advance)}
	}
	w, h := dr.Dx(), dr.Dy()
	pixels := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			pixels[y*w+x] = byte(a >> 8)
		}
	}
	return atlas.Bitmap{
		Width: w, Height: h, Pixels: pixels,
		BearingX: float64(dr.Min.X), BearingY: float64(-dr.Min.Y),
		Advance: fixed26ToFloat(advance),
	}
}

func fixed26ToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// DrawFrame builds and submits one frame. It returns immediately without
// touching GL state if nothing is dirty. Callers swap buffers afterward
// (GLFW has no "surface lost" state to recover from the way a compositor
// API might, so step 4 of the frame-building sequence collapses to nothing
// here).
func (r *Renderer) DrawFrame(p FrameParams) {
	if r.dirty == 0 {
		return
	}
	r.atl.BeginFrame()

	if r.dirty == DirtyCursorBlink && r.lastCursorIdx >= 0 && r.lastCursorIdx < len(r.lastBG) {
		r.toggleCursorFast(p)
		r.uploadAndDraw(r.lastBG, nil, nil, p)
		r.dirty = 0
		return
	}

	bg := make([]Instance, 0, 256)
	fgByPage := make(map[int][]Instance)
	var overlay []Instance

	bg = append(bg, rectInstance(0, 0, float32(p.Width), float32(p.Height), r.theme.background(p.Palette)))

	if tm := p.Tabs; tm != nil {
		bg = r.buildTabBar(tm, p, bg)
		if t := tm.Active(); t != nil {
			cursorIdx := -1
			bg, fgByPage, cursorIdx = r.buildGrid(t.Grid, t.Sess.Handler.Cursor, p, bg, fgByPage)
			r.lastCursorIdx = cursorIdx
		}
	}

	if p.Search != nil {
		bg = r.buildSearchBar(p, bg)
	}

	if p.Menu != nil && p.Menu.IsOpen() {
		overlay = r.buildMenu(p, overlay)
	}

	r.lastBG = bg
	r.uploadAndDraw(bg, fgByPage, overlay, p)
	r.dirty = 0
}

// toggleCursorFast flips the cached cursor instance's alpha in place,
// implementing spec.md §4.4's "only the cursor-blink bit flipped" reuse
// path without rebuilding the whole instance list.
func (r *Renderer) toggleCursorFast(p FrameParams) {
	in := &r.lastBG[r.lastCursorIdx]
	if in.FgA > 0 {
		in.FgA = 0
	} else {
		in.FgA = cursorAlpha(p)
	}
}

func cursorAlpha(p FrameParams) float32 {
	if p.CursorVisible {
		return 0.85
	}
	return 0
}

// cursorInstance builds the cursor's background rect for the cell at
// (x,y,w,h), shaped per DECSCUSR's selected style: a full block, a 2px
// bottom underline, or a 2px left-edge bar.
func cursorInstance(x, y, w, h float32, shape vtparser.CursorShape, color [4]float32) Instance {
	const thickness = 2
	switch shape.Style {
	case vtparser.CursorUnderline:
		return rectInstance(x, y+h-thickness, w, thickness, color)
	case vtparser.CursorBar:
		return rectInstance(x, y, thickness, h, color)
	default: // vtparser.CursorBlock
		return rectInstance(x, y, w, h, color)
	}
}

// hoveredCell reports whether (absRow, col) falls under the pointer's
// currently hovered URL match, for the hover-underline cue.
func hoveredCell(h urldetect.HoverState, absRow, col int) bool {
	if !h.Active {
		return false
	}
	for _, seg := range h.Match.Segments {
		if seg.Row == absRow && col >= seg.StartCol && col < seg.EndCol {
			return true
		}
	}
	return false
}

func (t Theme) background(pal *palette.Palette) [4]float32 {
	if pal == nil {
		return [4]float32{0, 0, 0, 1}
	}
	return pal.Bg.Float32(1)
}

// buildTabBar lays out one rect per tab across the top strip, highlighting
// the active tab and flashing a bell badge.
func (r *Renderer) buildTabBar(tm *tabs.Manager, p FrameParams, bg []Instance) []Instance {
	h := p.TabBarHeight
	if h <= 0 {
		h = r.cellH + 10
	}
	bg = append(bg, rectInstance(0, 0, float32(p.Width), h, r.theme.TabBar.Float32(1)))

	all := tm.All()
	if len(all) == 0 {
		return bg
	}
	tabW := float32(p.Width) / float32(len(all))
	if tabW > 220 {
		tabW = 220
	}
	active := tm.ActiveIndex()
	for i := range all {
		x := float32(i) * tabW
		color := r.theme.TabInactive
		if i == active {
			color = r.theme.TabActive
		}
		bg = append(bg, rectInstance(x, 0, tabW-1, h, color.Float32(1)))
		if !all[i].BellAt().IsZero() {
			bg = append(bg, rectInstance(x+tabW-8, 2, 6, 6, palette.RGB8{R: 255, G: 120, B: 90}.Float32(1)))
		}
	}
	return bg
}

func (r *Renderer) buildSearchBar(p FrameParams, bg []Instance) []Instance {
	h := r.cellH + 8
	y := float32(p.Height) - h
	bg = append(bg, rectInstance(0, y, float32(p.Width), h, r.theme.SearchBarBg.Float32(1)))
	return bg
}

func (r *Renderer) buildMenu(p FrameParams, overlay []Instance) []Instance {
	items := p.Menu.Items()
	rowH := r.cellH + 6
	w := float32(260)
	h := float32(len(items))*rowH + 8
	x := (float32(p.Width) - w) / 2
	y := (float32(p.Height) - h) / 2
	overlay = append(overlay, rectInstance(x, y, w, h, r.theme.MenuBg.Float32(0.97)))
	selected := p.Menu.SelectedIndex()
	for i := range items {
		if i == selected {
			overlay = append(overlay, rectInstance(x+4, y+4+float32(i)*rowH, w-8, rowH-2, r.theme.MenuSelected.Float32(0.8)))
		}
	}
	return overlay
}

// buildGrid walks every visible cell of g, emitting a background rect for
// cells whose resolved background differs from the theme default, a
// glyph instance (or decomposed flat rects for box-drawing/block/braille/
// Powerline ranges) for every non-blank cell, plus selection/cursor
// highlighting. It returns the updated bg slice, the fg instances grouped
// by atlas page, and the bg-slice index holding the cursor rect (-1 if the
// cursor isn't in the visible viewport).
func (r *Renderer) buildGrid(g *grid.Grid, cursorShape vtparser.CursorShape, p FrameParams, bg []Instance, fgByPage map[int][]Instance) ([]Instance, map[int][]Instance, int) {
	cw, ch := r.cellW, r.cellH
	originY := float32(0)
	if p.TabBarHeight > 0 {
		originY = p.TabBarHeight
	} else {
		originY = r.cellH + 10
	}
	cursorIdx := -1
	cur := g.Cursor()
	scrollOffset := g.DisplayOffset()
	sbLen := g.ScrollbackLen()

	for row := 0; row < g.Lines; row++ {
		rowCells := g.DisplayRow(row)
		absRow := sbLen - scrollOffset + row
		y := originY + float32(row)*ch

		for col := 0; col < len(rowCells.Cells); col++ {
			c := rowCells.Cells[col]
			if c.IsSpacer() {
				continue
			}
			fgColor := p.Palette.Resolve(c.Fg, true)
			bgColor := p.Palette.Resolve(c.Bg, false)
			if c.Flags&cell.Inverse != 0 {
				fgColor, bgColor = bgColor, fgColor
			}

			width := cw
			if c.IsWide() {
				width = cw * 2
			}
			x := float32(col) * cw

			if selection.Contains(p.Selection, absRow, col) {
				bgColor = p.Palette.SelBg
				fgColor = p.Palette.SelFg
			}

			isCursorCell := scrollOffset == 0 && row == cur.Row && col == cur.Col
			if isCursorCell {
				cursorIdx = len(bg)
				bg = append(bg, cursorInstance(x, y, width, ch, cursorShape, p.Palette.Cursor.Float32(cursorAlpha(p))))
			} else if bgColor != p.Palette.Bg {
				bg = append(bg, rectInstance(x, y, width, ch, bgColor.Float32(1)))
			}

			if c.Flags.HasUnderline() || hoveredCell(p.Hover, absRow, col) {
				bg = append(bg, rectInstance(x, y+ch-2, width, 2, fgColor.Float32(1)))
			}
			if c.Flags&cell.Strikeout != 0 {
				bg = append(bg, rectInstance(x, y+ch/2, width, 2, fgColor.Float32(1)))
			}

			if c.Char == 0 || c.Char == ' ' {
				continue
			}

			liftedFg := liftForContrast(fgColor, bgColor, r.minContrast)

			if rects, ok := decomposeGlyph(c.Char); ok {
				alpha := shadeAlpha(c.Char)
				for _, ur := range rects {
					bg = append(bg, rectInstance(
						x+ur.X0*cw, y+ur.Y0*ch,
						(ur.X1-ur.X0)*cw, (ur.Y1-ur.Y0)*ch,
						liftedFg.Float32(alpha)))
				}
				continue
			}

			style := styleRegular
			if c.Flags&cell.Bold != 0 {
				style = styleBold
			}
			key := atlas.Key{GlyphID: uint32(c.Char), FaceIndex: 0, SizeQ6: atlas.SizeToQ6(r.fontSizePt), Collection: style}
			entry := r.atl.Lookup(key, r.rasterize)
			if entry.Empty {
				continue
			}
			gx := x + float32(entry.BearingX)
			gy := y + ch - float32(entry.BearingY)
			gw := entry.UVSize[0] * atlas.PageSize
			gh := entry.UVSize[1] * atlas.PageSize
			uv := [4]float32{entry.UVPos[0], entry.UVPos[1], entry.UVSize[0], entry.UVSize[1]}
			fgByPage[entry.Page] = append(fgByPage[entry.Page],
				glyphInstance(gx, gy, gw, gh, uv, liftedFg.Float32(1), bgColor.Float32(1)))
		}
	}
	return bg, fgByPage, cursorIdx
}

// orthoMatrix returns a column-major orthographic projection, matching the
// teacher's own helper.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	rml, tmb, fmn := right-left, top-bottom, far-near
	return [16]float32{
		2 / rml, 0, 0, 0,
		0, 2 / tmb, 0, 0,
		0, 0, -2 / fmn, 0,
		-(right + left) / rml, -(top + bottom) / tmb, -(far + near) / fmn, 1,
	}
}

func (r *Renderer) initGL() error {
	var err error
	r.program, err = createProgram(instanceVertexShader, instanceFragmentShader)
	if err != nil {
		return fmt.Errorf("render: shader program: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.program, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.program, gl.Str("atlasTex\x00"))

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	quad := []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.bgVAO, r.bgVBO = r.newInstancedVAO()
	r.fgVAO, r.fgVBO = r.newInstancedVAO()
	r.ovVAO, r.ovVBO = r.newInstancedVAO()

	for i := range r.texPages {
		gl.GenTextures(1, &r.texPages[i])
	}
	return nil
}

func (r *Renderer) newInstancedVAO() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	stride := int32(instanceFloats * 4)
	offsets := []struct {
		loc  uint32
		size int32
		off  int
	}{
		{1, 4, 0}, {2, 4, 4 * 4}, {3, 4, 8 * 4}, {4, 4, 12 * 4}, {5, 1, 16 * 4},
	}
	for _, o := range offsets {
		gl.EnableVertexAttribArray(o.loc)
		gl.VertexAttribPointerWithOffset(o.loc, o.size, gl.FLOAT, false, stride, uintptr(o.off))
		gl.VertexAttribDivisor(o.loc, 1)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// uploadAndDraw uploads the bg/fg/overlay instance lists and records a
// single render pass: bg, then fg (grouped per atlas page), then overlay.
func (r *Renderer) uploadAndDraw(bg []Instance, fgByPage map[int][]Instance, overlay []Instance, p FrameParams) {
	gl.Viewport(0, 0, int32(p.Width), int32(p.Height))
	bgc := r.theme.background(p.Palette)
	gl.ClearColor(bgc[0], bgc[1], bgc[2], bgc[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	proj := orthoMatrix(0, float32(p.Width), float32(p.Height), 0, -1, 1)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.Uniform1i(r.texLoc, 0)

	r.refreshAtlasTextures()

	drawInstances(r.bgVAO, r.bgVBO, bg)

	pages := make([]int, 0, len(fgByPage))
	for pg := range fgByPage {
		pages = append(pages, pg)
	}
	sort.Ints(pages)
	for _, pg := range pages {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texPages[pg])
		drawInstances(r.fgVAO, r.fgVBO, fgByPage[pg])
	}

	if len(overlay) > 0 {
		drawInstances(r.ovVAO, r.ovVBO, overlay)
	}
}

func drawInstances(vao, vbo uint32, instances []Instance) {
	if len(instances) == 0 {
		return
	}
	data := packInstances(instances)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(len(instances)))
	gl.BindVertexArray(0)
}

// refreshAtlasTextures uploads any atlas pages written since the last
// frame, so a frame with no new glyphs costs zero texture uploads.
func (r *Renderer) refreshAtlasTextures() {
	for _, idx := range r.atl.TakeDirtyPages() {
		pixels := r.atl.PagePixels(idx)
		if pixels == nil {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, r.texPages[idx])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, atlas.PageSize, atlas.PageSize, 0,
			gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

const instanceVertexShader = `
#version 410 core
layout (location = 0) in vec2 quadPos;
layout (location = 1) in vec4 posSize;
layout (location = 2) in vec4 uvRect;
layout (location = 3) in vec4 fgColor;
layout (location = 4) in vec4 bgColor;
layout (location = 5) in float flagsIn;

out vec2 vTex;
out vec4 vFg;
flat out int vFlags;

uniform mat4 projection;

void main() {
	vec2 pos = posSize.xy + quadPos * posSize.zw;
	gl_Position = projection * vec4(pos, 0.0, 1.0);
	vTex = uvRect.xy + quadPos * uvRect.zw;
	vFg = fgColor;
	vFlags = int(flagsIn);
}
` + "\x00"

const instanceFragmentShader = `
#version 410 core
in vec2 vTex;
in vec4 vFg;
flat in int vFlags;
out vec4 FragColor;
uniform sampler2D atlasTex;

void main() {
	if ((vFlags & 1) != 0) {
		float a = texture(atlasTex, vTex).r;
		FragColor = vec4(vFg.rgb, vFg.a * a);
	} else {
		FragColor = vFg;
	}
}
` + "\x00"

func createProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("render: link program: %s", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("render: compile shader: %s", log)
	}
	return shader, nil
}

// Destroy releases every GL resource the renderer owns.
func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.program)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteBuffers(1, &r.bgVBO)
	gl.DeleteBuffers(1, &r.fgVBO)
	gl.DeleteBuffers(1, &r.ovVBO)
	gl.DeleteVertexArrays(1, &r.bgVAO)
	gl.DeleteVertexArrays(1, &r.fgVAO)
	gl.DeleteVertexArrays(1, &r.ovVAO)
	for _, tex := range r.texPages {
		gl.DeleteTextures(1, &tex)
	}
}
