// Package window wraps one GLFW/OpenGL window and the tab strip it hosts,
// generalized from the teacher's single fixed window.go into a tear-off
// capable, multi-window-aware host satisfying eventloop.WindowHost.
package window

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/oriterm/oriterm/assets"
	"github.com/oriterm/oriterm/statefile"
	"github.com/oriterm/oriterm/tabs"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Width  int
	Height int
	Title  string
	Hidden bool // frameless/hidden windows are used for the tear-off animation
}

// DefaultConfig returns the default window configuration.
func DefaultConfig() Config {
	return Config{Width: 900, Height: 600, Title: "oriterm"}
}

// Geometry is the on-disk persisted window position+size, written
// atomically via statefile on clean exit and restored at startup.
type Geometry struct {
	X, Y, Width, Height int
}

// Window wraps a GLFW window, its OpenGL context, and the tab strip it
// displays.
type Window struct {
	glfw         *glfw.Window
	width        int
	height       int
	config       Config
	isFullscreen bool
	savedX       int
	savedY       int
	savedWidth   int
	savedHeight  int

	tabs          *tabs.Manager
	redrawPending bool
	drag          *Drag
}

// New creates a new GLFW window with OpenGL context and attaches mgr as
// its tab strip.
func New(cfg Config, mgr *tabs.Manager) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.Decorated, glfw.False)
	}

	glfw.WindowHintString(glfw.X11ClassName, "oriterm")
	glfw.WindowHintString(glfw.X11InstanceName, "oriterm")

	gw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: create: %w", err)
	}
	gw.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		gw.Destroy()
		return nil, fmt.Errorf("window: opengl init: %w", err)
	}
	glfw.SwapInterval(1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w := &Window{glfw: gw, width: cfg.Width, height: cfg.Height, config: cfg, tabs: mgr}
	w.loadIcon()
	return w, nil
}

// GLFW returns the underlying GLFW window, for input-callback wiring in
// main.
func (w *Window) GLFW() *glfw.Window { return w.glfw }

// Tabs returns the tab manager this window hosts, satisfying
// eventloop.WindowHost.
func (w *Window) Tabs() *tabs.Manager { return w.tabs }

// RequestRedraw marks the window dirty for the next frame, satisfying
// eventloop.WindowHost. The actual draw happens in main's render loop,
// which checks and clears this flag.
func (w *Window) RequestRedraw() { w.redrawPending = true }

// TakeRedraw reports and clears the pending-redraw flag.
func (w *Window) TakeRedraw() bool {
	v := w.redrawPending
	w.redrawPending = false
	return v
}

// Closed reports whether the underlying OS window has been asked to
// close, satisfying eventloop.WindowHost.
func (w *Window) Closed() bool { return w.glfw.ShouldClose() }

// RequestClose asks GLFW to close this window at the next poll.
func (w *Window) RequestClose() { w.glfw.SetShouldClose(true) }

// Drag returns the window's in-progress tab drag, or nil if none.
func (w *Window) Drag() *Drag { return w.drag }

// SetDrag installs or clears the window's in-progress tab drag.
func (w *Window) SetDrag(d *Drag) { w.drag = d }

func (w *Window) GetSize() (int, int)             { return w.glfw.GetSize() }
func (w *Window) GetFramebufferSize() (int, int)  { return w.glfw.GetFramebufferSize() }
func (w *Window) GetPos() (int, int)              { return w.glfw.GetPos() }
func (w *Window) SetPos(x, y int)                 { w.glfw.SetPos(x, y) }
func (w *Window) Show()                           { w.glfw.Show() }
func (w *Window) SwapBuffers()                    { w.glfw.SwapBuffers() }

func (w *Window) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (w *Window) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ToggleFullscreen toggles between fullscreen and windowed mode.
func (w *Window) ToggleFullscreen() {
	if w.isFullscreen {
		w.glfw.SetMonitor(nil, w.savedX, w.savedY, w.savedWidth, w.savedHeight, 0)
		w.isFullscreen = false
		return
	}
	w.savedX, w.savedY = w.glfw.GetPos()
	w.savedWidth, w.savedHeight = w.glfw.GetSize()
	monitor := glfw.GetPrimaryMonitor()
	mode := monitor.GetVideoMode()
	w.glfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	w.isFullscreen = true
}

func (w *Window) IsFullscreen() bool { return w.isFullscreen }

func (w *Window) loadIcon() {
	icons := assets.LoadMultiSizeIcons()
	if len(icons) > 0 {
		w.glfw.SetIcon(icons)
	}
}

func (w *Window) SetIcon(icons []image.Image) {
	if len(icons) > 0 {
		w.glfw.SetIcon(icons)
	}
}

// Destroy releases the window's GL context and GLFW resources. It does
// not call glfw.Terminate — the caller terminates GLFW once, after every
// window is gone.
func (w *Window) Destroy() { w.glfw.Destroy() }

// PollEvents processes pending GLFW events for every window.
func PollEvents() { glfw.PollEvents() }

// SaveGeometry persists the window's current position and size to path,
// atomically, for restoration on the next launch.
func (w *Window) SaveGeometry(path string) error {
	x, y := w.glfw.GetPos()
	width, height := w.glfw.GetSize()
	return statefile.WriteJSON(path, Geometry{X: x, Y: y, Width: width, Height: height})
}

// LoadGeometry reads a previously saved geometry, returning ok=false (not
// an error) if none was saved yet.
func LoadGeometry(path string) (Geometry, bool) {
	var g Geometry
	ok, err := statefile.ReadJSON(path, &g)
	if err != nil || !ok {
		return Geometry{}, false
	}
	return g, true
}
