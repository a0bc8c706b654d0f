package main

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/oriterm/oriterm/config"
	"github.com/oriterm/oriterm/keybindings"
	"github.com/oriterm/oriterm/keyencode"
	"github.com/oriterm/oriterm/mouseencode"
	"github.com/oriterm/oriterm/palette"
	"github.com/oriterm/oriterm/render"
	"github.com/oriterm/oriterm/search"
	"github.com/oriterm/oriterm/selection"
	"github.com/oriterm/oriterm/tabs"
	"github.com/oriterm/oriterm/urldetect"
)

const tabBarHeight = 34

// clipboardFunc builds the OSC 52 clipboard backend for gw: set=false reads
// the system clipboard, set=true overwrites it with payload. GLFW exposes a
// single system clipboard, so selection (clipboard vs. primary) is ignored.
func clipboardFunc(gw *glfw.Window) func(selection string, set bool, payload string) string {
	return func(_ string, set bool, payload string) string {
		if set {
			gw.SetClipboardString(payload)
			return ""
		}
		return gw.GetClipboardString()
	}
}

// installCallbacks wires every GLFW input callback for the app's one
// window. All of them fire synchronously from inside glfw.PollEvents,
// which onPoll is the only caller of, so every handler here runs on the
// event-loop goroutine alongside onOutput/onExited/onReload/onBlink.
func (a *app) installCallbacks() {
	gw := a.win.GLFW()

	gw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.resizeToWindow()
	})
	gw.SetCloseCallback(func(_ *glfw.Window) {
		a.win.RequestClose()
	})
	gw.SetKeyCallback(a.onKey)
	gw.SetCharCallback(a.onChar)
	gw.SetMouseButtonCallback(a.onMouseButton)
	gw.SetCursorPosCallback(a.onCursorPos)
	gw.SetScrollCallback(a.onScroll)
}

// resizeToWindow recomputes the terminal grid size from the current
// framebuffer size and the renderer's cell metrics, and propagates it to
// every tab plus the renderer.
func (a *app) resizeToWindow() {
	fbW, fbH := a.win.GetFramebufferSize()
	cw, ch := a.renderer.CellSize()
	if cw <= 0 || ch <= 0 {
		return
	}
	usableH := float32(fbH) - tabBarHeight
	if usableH < ch {
		usableH = ch
	}
	cols := int(float32(fbW) / cw)
	rows := int(usableH / ch)
	if cols < 2 {
		cols = 2
	}
	if rows < 1 {
		rows = 1
	}
	a.mgr.ResizeAll(cols, rows, true)
	a.urlCache.Invalidate()
	a.renderer.MarkDirty(render.DirtyGrid | render.DirtyTabBar | render.DirtyScale)
}

// activeSource builds the absolute-row view over the active tab's grid
// used by selection, search, and URL detection.
func (a *app) activeSource() (selection.Source, bool) {
	t := a.mgr.Active()
	if t == nil {
		return nil, false
	}
	return selection.GridSource{G: t.Grid}, true
}

// activePalette resolves the active tab's palette, falling back to the
// config's default scheme for an empty window.
func (a *app) activePalette() *palette.Palette {
	t := a.mgr.Active()
	if t == nil {
		return palette.FromScheme(a.cfg.Colors.Scheme)
	}
	return t.Sess.Handler.Palette
}

func (a *app) draw() {
	pal := a.activePalette()
	fbW, fbH := a.win.GetFramebufferSize()
	var searchParam *search.State
	if a.searchOpen {
		searchParam = a.searchState
	}
	a.renderer.DrawFrame(render.FrameParams{
		Width:         fbW,
		Height:        fbH,
		Tabs:          a.mgr,
		Palette:       pal,
		CursorVisible: a.cursorOn,
		Menu:          a.menu,
		Selection:     a.sel,
		Search:        searchParam,
		Hover:         a.hover,
		TabBarHeight:  tabBarHeight,
	})
	a.win.SwapBuffers()
}

// onPoll runs on every eventloop.PollInterval tick: pump GLFW's event
// queue (firing every callback above synchronously), clean up any tab
// whose shell exited this tick, then redraw if anything requested it.
func (a *app) onPoll() {
	if a.win.Closed() {
		a.loop.RemoveWindow(a.winID)
		return
	}
	glfwPollEvents()
	for _, t := range a.mgr.CleanupExited() {
		if err := t.ExitErr(); err != nil {
			a.log.Debugw("tab exited", "tab", t.ID(), "err", err)
		}
	}
	if a.mgr.Empty() {
		a.win.RequestClose()
		return
	}
	if a.win.TakeRedraw() {
		a.draw()
	}
}

func glfwPollEvents() { glfw.PollEvents() }

func (a *app) onOutput(id tabs.ID, bytes []byte) {
	t := a.mgr.ByID(id)
	if t == nil {
		return
	}
	t.Deliver(bytes)
	a.urlCache.Invalidate()
	a.renderer.MarkDirty(render.DirtyGrid)
}

func (a *app) onExited(id tabs.ID, err error) {
	if t := a.mgr.ByID(id); t != nil {
		t.MarkExited(err)
	}
	a.renderer.MarkDirty(render.DirtyTabBar)
}

func (a *app) onReload() {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		a.log.Warnw("config reload failed, keeping previous config", "err", err)
		return
	}
	a.cfg = cfg
	a.loop.SetBlinkInterval(time.Duration(cfg.Terminal.CursorBlinkIntervalMs) * time.Millisecond)
	a.renderer.SetTheme(cfg.Colors.Scheme)
	if err := a.renderer.SetFontSize(cfg.Font.Size); err != nil {
		a.log.Warnw("reload: set font size", "err", err)
	}
	a.renderer.SetMinContrast(cfg.Colors.MinimumContrast)
	a.mgr.SetClipboard(cfg.Behavior.ClipboardOSC52, clipboardFunc(a.win.GLFW()))
	a.menu.Reload()
	a.resizeToWindow()
}

func (a *app) onBlink(on bool) {
	if t := a.mgr.Active(); t != nil && !t.Sess.Handler.Modes.ShowCursor {
		a.cursorOn = false
		a.renderer.MarkDirty(render.DirtyCursorBlink)
		return
	}
	a.cursorOn = on
	a.renderer.MarkDirty(render.DirtyCursorBlink)
}

func (a *app) onThemeSelected(name string) {
	a.cfg.Colors.Scheme = name
	a.renderer.SetTheme(name)
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		a.log.Warnw("save theme selection", "err", err)
	}
	a.renderer.MarkDirty(render.DirtyGrid | render.DirtyTabBar)
}

// onKey handles application shortcuts and non-printable keys; printable
// characters instead arrive through onChar so IME/dead-key composition and
// shifted symbols land correctly (see keybindings.ClassifyChar's doc comment).
func (a *app) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	if a.menu.IsOpen() {
		a.handleMenuKey(key)
		return
	}
	r := keybindings.Classify(key, mods)
	switch r.Action {
	case keybindings.ActionExit:
		a.win.RequestClose()
	case keybindings.ActionNewTab:
		a.newTab()
	case keybindings.ActionCloseTab:
		a.mgr.CloseActive()
		a.renderer.MarkDirty(render.DirtyTabBar)
	case keybindings.ActionNextTab:
		a.mgr.NextTab()
		a.renderer.MarkDirty(render.DirtyTabBar | render.DirtyGrid)
	case keybindings.ActionPrevTab:
		a.mgr.PrevTab()
		a.renderer.MarkDirty(render.DirtyTabBar | render.DirtyGrid)
	case keybindings.ActionToggleFullscreen:
		a.win.ToggleFullscreen()
	case keybindings.ActionToggleMenu:
		a.menu.Toggle()
		a.renderer.MarkDirty(render.DirtyGrid)
	case keybindings.ActionFind:
		a.toggleSearch()
	case keybindings.ActionCopy:
		a.copySelection()
	case keybindings.ActionPaste:
		a.pasteClipboard()
	case keybindings.ActionScrollUp:
		a.scrollActive(10)
	case keybindings.ActionScrollDown:
		a.scrollActive(-10)
	case keybindings.ActionScrollUpLine:
		a.scrollActive(1)
	case keybindings.ActionScrollDownLine:
		a.scrollActive(-1)
	case keybindings.ActionInput:
		a.sendKeyEvent(r.Event, action)
	}
}

func (a *app) handleMenuKey(key glfw.Key) {
	switch key {
	case glfw.KeyUp:
		a.menu.MoveUp()
	case glfw.KeyDown:
		a.menu.MoveDown()
	case glfw.KeyEnter, glfw.KeyKPEnter:
		a.menu.Confirm()
	case glfw.KeyEscape:
		a.menu.Close()
	default:
		return
	}
	a.renderer.MarkDirty(render.DirtyGrid)
}

func (a *app) onChar(_ *glfw.Window, r rune) {
	if a.menu.IsOpen() {
		return
	}
	if a.searchOpen {
		a.appendSearchRune(r)
		return
	}
	ev := keybindings.ClassifyChar(r, 0)
	a.sendKeyEvent(ev, glfw.Press)
}

func (a *app) sendKeyEvent(ev keyencode.Event, glfwAction glfw.Action) {
	t := a.mgr.Active()
	if t == nil {
		return
	}
	switch glfwAction {
	case glfw.Press:
		ev.Type = keyencode.Press
	case glfw.Repeat:
		ev.Type = keyencode.Repeat
	case glfw.Release:
		ev.Type = keyencode.Release
	}
	h := t.Sess.Handler
	mode := keyencode.Mode{
		ApplicationCursor: h.Modes.ApplicationCursor,
		ApplicationKeypad: h.Modes.ApplicationKeypad,
		Kitty:             keyencode.KittyFlags(h.KittyFlags()),
	}
	bytes := keyencode.Encode(ev, mode)
	if bytes == nil {
		return
	}
	if t.Grid.DisplayOffset() != 0 {
		t.Grid.ResetViewport()
	}
	_, _ = t.Write(bytes)
}

func (a *app) newTab() {
	if _, err := a.mgr.NewTab(context.Background()); err != nil {
		a.log.Warnw("new tab", "err", err)
		return
	}
	a.resizeToWindow()
	a.renderer.MarkDirty(render.DirtyTabBar | render.DirtyGrid)
}

func (a *app) scrollActive(delta int) {
	t := a.mgr.Active()
	if t == nil {
		return
	}
	t.Grid.ScrollViewport(delta)
	a.renderer.MarkDirty(render.DirtyGrid)
}

func (a *app) copySelection() {
	src, ok := a.activeSource()
	if !ok || !a.sel.Active {
		return
	}
	text := selection.Extract(src, a.sel)
	if text != "" {
		a.win.GLFW().SetClipboardString(text)
	}
}

func (a *app) pasteClipboard() {
	t := a.mgr.Active()
	if t == nil {
		return
	}
	text := a.win.GLFW().GetClipboardString()
	if text == "" {
		return
	}
	if t.Sess.Handler.Modes.BracketedPaste {
		_, _ = t.Write([]byte("\x1b[200~"))
		_, _ = t.Write([]byte(text))
		_, _ = t.Write([]byte("\x1b[201~"))
		return
	}
	_, _ = t.Write([]byte(text))
}

func (a *app) toggleSearch() {
	a.searchOpen = !a.searchOpen
	if !a.searchOpen {
		a.searchState = &search.State{}
	}
	a.renderer.MarkDirty(render.DirtyGrid)
}

func (a *app) appendSearchRune(r rune) {
	src, ok := a.activeSource()
	if !ok {
		return
	}
	if r == '\r' || r == '\n' {
		a.searchState.Next()
	} else {
		a.searchState.Query += string(r)
		*a.searchState = search.Run(src, a.searchState.Query)
	}
	a.renderer.MarkDirty(render.DirtyGrid)
}

// cellUnderCursor converts a window pixel coordinate into a grid (row,
// col), clamped to the active tab's current size.
func (a *app) cellUnderCursor(x, y float64) (row, col int, ok bool) {
	t := a.mgr.Active()
	if t == nil {
		return 0, 0, false
	}
	cw, ch := a.renderer.CellSize()
	if cw <= 0 || ch <= 0 {
		return 0, 0, false
	}
	row = int((y - tabBarHeight) / float64(ch))
	col = int(x / float64(cw))
	if row < 0 || row >= t.Grid.Lines || col < 0 || col >= t.Grid.Cols {
		return 0, 0, false
	}
	return row, col, true
}

func (a *app) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	t := a.mgr.Active()
	if t == nil {
		return
	}
	x, y := a.win.GLFW().GetCursorPos()
	row, col, inGrid := a.cellUnderCursor(x, y)

	ctrl := mods&glfw.ModControl != 0
	if ctrl && button == glfw.MouseButtonLeft && action == glfw.Press && inGrid {
		a.openURLAt(row, col)
		return
	}

	if modesMouse := t.Sess.Handler.Modes; modesMouse.MouseReportingActive() && inGrid {
		if bytes := a.encodeMouseButton(t, button, action, row, col, mods); bytes != nil {
			_, _ = t.Write(bytes)
			return
		}
	}

	if button != glfw.MouseButtonLeft {
		return
	}
	absRow := t.Grid.ScrollbackLen() - t.Grid.DisplayOffset() + row
	if action == glfw.Press && inGrid {
		a.selecting = true
		a.sel = selection.Begin(selection.GridSource{G: t.Grid}, selection.Character, selection.Anchor{Row: absRow, Col: col})
	} else if action == glfw.Release {
		a.selecting = false
		if a.cfg.Behavior.CopyOnSelect {
			a.copySelection()
		}
	}
	a.renderer.MarkDirty(render.DirtyGrid)
}

func (a *app) encodeMouseButton(t *tabs.Tab, button glfw.MouseButton, action glfw.Action, row, col int, mods glfw.ModifierKey) []byte {
	var btn mouseencode.Button
	switch button {
	case glfw.MouseButtonLeft:
		btn = mouseencode.ButtonLeft
	case glfw.MouseButtonMiddle:
		btn = mouseencode.ButtonMiddle
	case glfw.MouseButtonRight:
		btn = mouseencode.ButtonRight
	default:
		return nil
	}
	act := mouseencode.Press
	if action == glfw.Release {
		act = mouseencode.Release
	}
	return a.mouseEnc.Encode(mouseencode.Event{
		Button: btn, Action: act, Row: row, Col: col,
		Shift: mods&glfw.ModShift != 0, Alt: mods&glfw.ModAlt != 0, Control: mods&glfw.ModControl != 0,
	}, mouseModes(t))
}

func mouseModes(t *tabs.Tab) mouseencode.Modes {
	m := t.Sess.Handler.Modes
	return mouseencode.Modes{X10: m.MouseX10, ButtonEvent: m.MouseButtonEvent, AnyEvent: m.MouseAnyEvent, UTF8: m.MouseUTF8, SGR: m.MouseSGR}
}

func (a *app) onCursorPos(_ *glfw.Window, x, y float64) {
	t := a.mgr.Active()
	if t == nil {
		return
	}
	row, col, inGrid := a.cellUnderCursor(x, y)

	if t.Sess.Handler.Modes.MouseReportingActive() && inGrid {
		if bytes := a.mouseEnc.Encode(mouseencode.Event{
			Button: mouseencode.ButtonNone, Action: mouseencode.Motion, Row: row, Col: col, ButtonHeld: a.selecting,
		}, mouseModes(t)); bytes != nil {
			_, _ = t.Write(bytes)
		}
	}

	if a.selecting && inGrid {
		absRow := t.Grid.ScrollbackLen() - t.Grid.DisplayOffset() + row
		a.sel = selection.Extend(selection.GridSource{G: t.Grid}, a.sel, selection.Anchor{Row: absRow, Col: col})
		a.renderer.MarkDirty(render.DirtyGrid)
		return
	}

	if inGrid {
		absRow := t.Grid.ScrollbackLen() - t.Grid.DisplayOffset() + row
		matches := a.urlCache.Scan(selection.GridSource{G: t.Grid}, t.Grid.Generation())
		newHover := urldetect.UpdateHover(matches, absRow, col)
		if newHover.Active != a.hover.Active || newHover.Match.URL != a.hover.Match.URL {
			a.hover = newHover
			a.renderer.MarkDirty(render.DirtyGrid)
		}
	}
}

func (a *app) openURLAt(row, col int) {
	t := a.mgr.Active()
	if t == nil {
		return
	}
	absRow := t.Grid.ScrollbackLen() - t.Grid.DisplayOffset() + row
	matches := a.urlCache.Scan(selection.GridSource{G: t.Grid}, t.Grid.Generation())
	m, ok := urldetect.At(matches, absRow, col)
	if !ok {
		return
	}
	if err := urldetect.Open(m.URL, openWithXDGOpen); err != nil {
		a.log.Warnw("open url", "url", m.URL, "err", err)
	}
}

// openWithXDGOpen launches the platform's default handler for target. It is
// the urldetect.Opener this app wires in; urldetect itself validates the
// scheme before ever calling it.
func openWithXDGOpen(target string) error {
	return openWithXDGOpenCmd(target).Start()
}

// openWithXDGOpenCmd builds (without starting) the platform-specific command
// that opens target in its default handler.
func openWithXDGOpenCmd(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

func (a *app) onScroll(_ *glfw.Window, _, yoff float64) {
	if a.menu.IsOpen() {
		if yoff > 0 {
			a.menu.MoveUp()
		} else if yoff < 0 {
			a.menu.MoveDown()
		}
		a.renderer.MarkDirty(render.DirtyGrid)
		return
	}
	if yoff == 0 {
		return
	}
	t := a.mgr.Active()
	if t == nil {
		return
	}
	if t.Sess.Handler.Modes.MouseReportingActive() {
		x, y := a.win.GLFW().GetCursorPos()
		if row, col, ok := a.cellUnderCursor(x, y); ok {
			btn := mouseencode.WheelUp
			if yoff < 0 {
				btn = mouseencode.WheelDown
			}
			if bytes := a.mouseEnc.Encode(mouseencode.Event{Button: btn, Action: mouseencode.Press, Row: row, Col: col}, mouseModes(t)); bytes != nil {
				_, _ = t.Write(bytes)
				return
			}
		}
	}
	a.scrollActive(int(yoff) * 3)
}
