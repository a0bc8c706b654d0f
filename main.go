// Command oriterm is the terminal's entry point: it loads config, opens
// the first window, and hands control to the cooperative event loop.
// Grounded on the teacher's main.go (a flat setup-then-for-loop shape)
// but with window polling, PTY draining, config reload, and rendering all
// folded into eventloop.Loop's single select instead of a hand-rolled
// ~60fps for loop, per spec.md §5.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/oriterm/oriterm/config"
	"github.com/oriterm/oriterm/eventloop"
	"github.com/oriterm/oriterm/logging"
	"github.com/oriterm/oriterm/menu"
	"github.com/oriterm/oriterm/mouseencode"
	"github.com/oriterm/oriterm/render"
	"github.com/oriterm/oriterm/search"
	"github.com/oriterm/oriterm/selection"
	"github.com/oriterm/oriterm/tabs"
	"github.com/oriterm/oriterm/urldetect"
	"github.com/oriterm/oriterm/window"
)

func main() {
	configDir, err := config.Dir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "oriterm:", err)
		os.Exit(1)
	}
	logDir := filepath.Join(configDir, "log")

	sugar, err := logging.New(logDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oriterm:", err)
		os.Exit(1)
	}
	defer sugar.Sync()
	defer logging.InstallCrashHook(sugar, logDir)()

	cfgPath, err := config.Path()
	if err != nil {
		sugar.Fatalw("resolve config path", "err", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		sugar.Warnw("config load fell back to defaults", "err", err)
	}

	if err := glfw.Init(); err != nil {
		sugar.Fatalw("glfw init", "err", err)
	}
	defer glfw.Terminate()

	loop := eventloop.New(256)
	loop.SetBlinkInterval(time.Duration(cfg.Terminal.CursorBlinkIntervalMs) * time.Millisecond)

	mgr := tabs.NewManager(loop.Events, tabOptionsFromConfig(cfg))

	geomPath := filepath.Join(configDir, "window.json")
	winCfg := window.DefaultConfig()
	if geo, ok := window.LoadGeometry(geomPath); ok && geo.Width > 0 && geo.Height > 0 {
		winCfg.Width, winCfg.Height = geo.Width, geo.Height
	}

	win, err := window.New(winCfg, mgr)
	if err != nil {
		sugar.Fatalw("open window", "err", err)
	}
	if geo, ok := window.LoadGeometry(geomPath); ok {
		win.SetPos(geo.X, geo.Y)
	}
	win.Show()
	winID := loop.AddWindow(win)

	mgr.SetClipboard(cfg.Behavior.ClipboardOSC52, clipboardFunc(win.GLFW()))

	if _, err := mgr.NewTab(context.Background()); err != nil {
		sugar.Fatalw("spawn initial tab", "err", err)
	}

	watcher, err := config.Watch(cfgPath, loop.Events)
	if err != nil {
		sugar.Warnw("config watch disabled", "err", err)
	} else {
		defer watcher.Close()
	}

	renderer, err := render.New()
	if err != nil {
		sugar.Fatalw("init renderer", "err", err)
	}
	defer renderer.Destroy()
	renderer.SetTheme(cfg.Colors.Scheme)
	if err := renderer.SetFontSize(cfg.Font.Size); err != nil {
		sugar.Warnw("set font size", "err", err)
	}
	renderer.SetMinContrast(cfg.Colors.MinimumContrast)
	renderer.MarkDirty(render.DirtyGrid | render.DirtyTabBar)

	a := &app{
		log:      sugar,
		cfg:      cfg,
		cfgPath:  cfgPath,
		geomPath: geomPath,
		loop:     loop,
		winID:    winID,
		mgr:      mgr,
		win:      win,
		renderer: renderer,
		menu:     menu.New(),
		mouseEnc: &mouseencode.Encoder{},
		urlCache: &urldetect.Cache{},
		searchState: &search.State{},
		cursorOn:    true,
	}
	a.menu.OnSelect = a.onThemeSelected
	a.installCallbacks()
	a.resizeToWindow()

	loop.OnOutput(a.onOutput)
	loop.OnExited(a.onExited)
	loop.OnReload(a.onReload)
	loop.OnBlink(a.onBlink)
	loop.OnPoll(a.onPoll)

	loop.Run()

	_ = win.SaveGeometry(geomPath)
}

func tabOptionsFromConfig(cfg *config.Config) tabs.Options {
	return tabs.Options{
		Shell:  cfg.Terminal.Shell,
		Cols:   cfg.Window.Columns,
		Rows:   cfg.Window.Rows,
		Scheme: cfg.Colors.Scheme,
	}
}

// app bundles every piece of mutable state the event loop's and GLFW's
// input callbacks share. Every field is touched exclusively from the
// goroutine running loop.Run (GLFW callbacks fire synchronously out of
// glfw.PollEvents, itself only ever called from onPoll on that same
// goroutine), per spec.md §5's single-writer rule.
type app struct {
	log      *zap.SugaredLogger
	cfg      *config.Config
	cfgPath  string
	geomPath string

	loop     *eventloop.Loop
	winID    int
	mgr      *tabs.Manager
	win      *window.Window
	renderer *render.Renderer
	menu     *menu.Menu
	mouseEnc *mouseencode.Encoder
	urlCache *urldetect.Cache

	sel         selection.Selection
	selecting   bool
	searchState *search.State
	searchOpen  bool
	hover       urldetect.HoverState
	cursorOn    bool
}
