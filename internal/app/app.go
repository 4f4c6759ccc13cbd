// Package app wires the terminal UI, the embedded Neovim session, and the
// grid engine together and runs the main event loop.
//
// A single goroutine (the one calling Run) owns every grid, the highlight
// table, and the screen. The Neovim RPC goroutine only ever decodes redraw
// batches and pushes them onto the handoff queue; a tcell interrupt event
// wakes the loop to drain and apply them.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termvim/internal/config"
	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/grid"
	"github.com/dshills/termvim/internal/highlight"
	"github.com/dshills/termvim/internal/input"
	"github.com/dshills/termvim/internal/logging"
	"github.com/dshills/termvim/internal/renderer"
	"github.com/dshills/termvim/internal/session"
)

// sessionCloseTimeout bounds how long Shutdown waits for the Neovim child
// to exit before abandoning it.
const sessionCloseTimeout = 2 * time.Second

// statusText is shown in the bottom hint bar.
const statusText = " termvim  |  Ctrl-Q quit"

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file. Empty means
	// the default location; a missing file means built-in defaults.
	ConfigPath string

	// ScriptPath is the path to the Lua rc script. Empty means no script.
	ScriptPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogFile overrides the configured log file when non-empty.
	LogFile string

	// Files are opened in the Neovim session on startup.
	Files []string
}

// Application is the central coordinator for all termvim components.
type Application struct {
	opts     Options
	cfg      *config.Config
	mappings map[string]string

	log     *logging.Logger
	logFile *os.File

	screen   tcell.Screen
	queue    *event.Queue
	registry *grid.Registry
	attrs    *highlight.AttrMap
	flush    *grid.Coordinator
	applier  *grid.Applier
	sess     *session.Session
	bridge   *input.Bridge
	status   *renderer.StatusLine
	views    map[int]*renderer.View
	watcher  *config.Watcher

	reload       atomic.Bool
	shutdownOnce sync.Once
}

// New loads configuration and prepares an Application. The terminal is not
// touched until Run.
func New(opts Options) (*Application, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	mappings := map[string]string{}
	if opts.ScriptPath != "" {
		mappings, err = config.RunScript(opts.ScriptPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("rc script: %w", err)
		}
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}

	a := &Application{
		opts:     opts,
		cfg:      cfg,
		mappings: mappings,
		views:    make(map[int]*renderer.View),
	}
	if err := a.initLogger(); err != nil {
		return nil, err
	}
	return a, nil
}

// initLogger opens the log destination. The UI owns the tty, so without a
// configured file all output is discarded.
func (a *Application) initLogger() error {
	var out io.Writer = io.Discard
	if a.cfg.Log.File != "" {
		f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		out = f
	}
	a.log = logging.New(logging.Config{
		Level:  logging.ParseLevel(a.cfg.Log.Level),
		Output: out,
	})
	return nil
}

// Run initializes the terminal, attaches to Neovim, and drives the event
// loop until quit, session failure, or Shutdown.
func (a *Application) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen

	a.attrs = highlight.NewAttrMap()
	a.flush = grid.NewCoordinator()
	a.registry = grid.NewRegistry(a.cfg.Grid.Width, a.cfg.Grid.Height, a.log)
	a.registry.SetOnCreate(a.attachView)
	a.applier = grid.NewApplier(a.registry, a.attrs, a.flush, a.log)
	a.status = renderer.NewStatusLine(screen, a.attrs, statusText)

	a.queue = event.NewQueue(a.cfg.Event.QueueSize, func() {
		// Wake the UI loop. A full tcell queue is fine: any later event
		// drains the handoff queue too.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	cols, rows := screen.Size()
	sess, err := session.Attach(session.Config{
		Command: a.cfg.Nvim.Command,
		Args:    a.cfg.Nvim.Args,
		Cols:    cols,
		Rows:    gridRows(rows),
	}, a.queue, a.log)
	if err != nil {
		return fmt.Errorf("attach nvim: %w", err)
	}
	a.sess = sess

	a.bridge = input.NewBridge(sess.Input, a.cfg.Input.QueueSize, a.log)
	a.bridge.SetMappings(a.mappings)
	a.bridge.Start()

	for _, f := range a.opts.Files {
		if err := sess.Edit(f); err != nil {
			a.log.Warn("open %s: %v", f, err)
		}
	}

	if a.opts.ConfigPath != "" {
		w, err := config.Watch(a.opts.ConfigPath, a.onConfigChange, a.log)
		if err != nil {
			a.log.Warn("config watch: %v", err)
		} else {
			a.watcher = w
		}
	}

	a.status.Draw()
	return a.loop()
}

// attachView wires a renderer onto each grid the session announces. The
// global grid (handle 1) carries the cursor.
func (a *Application) attachView(g *grid.Grid) {
	v := renderer.NewView(g, a.attrs, a.screen)
	if g.Handle() == 1 {
		v.SetFocused(true)
	}
	a.views[g.Handle()] = v
}

// loop is the UI event loop. PollEvent returns nil once the screen is
// finalized, which is how Shutdown from another goroutine stops us.
func (a *Application) loop() error {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}

		a.queue.Drain(a.applier.Apply)
		if err := a.sess.Err(); err != nil {
			return fmt.Errorf("nvim session: %w", err)
		}
		if a.reload.Swap(false) {
			a.applyConfigReload()
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				return ErrQuit
			}
			if keys := a.bridge.Translate(ev); keys != "" {
				a.bridge.Push(keys)
			}
		case *tcell.EventResize:
			cols, rows := ev.Size()
			if err := a.sess.TryResize(cols, gridRows(rows)); err != nil {
				a.log.Warn("resize: %v", err)
			}
			a.screen.Sync()
			a.status.Draw()
		}
	}
}

// gridRows reserves the bottom screen row for the status line.
func gridRows(screenRows int) int {
	if screenRows > 1 {
		return screenRows - 1
	}
	return screenRows
}

// onConfigChange runs on the watcher goroutine. It only flags the reload
// and wakes the loop; the UI goroutine does the actual work.
func (a *Application) onConfigChange() {
	a.reload.Store(true)
	if a.screen != nil {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// applyConfigReload re-reads the config file and applies the settings that
// can change at runtime, then forces a full redraw.
func (a *Application) applyConfigReload() {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		a.log.Warn("config reload: %v", err)
		return
	}
	a.cfg.Log.Level = cfg.Log.Level
	a.log.SetLevel(logging.ParseLevel(cfg.Log.Level))
	a.log.Info("config reloaded")

	for _, h := range a.registry.Handles() {
		if g, ok := a.registry.Get(h); ok {
			a.flush.MarkDirty(g)
		}
	}
	a.flush.Flush()
	a.status.Draw()
}

// Shutdown tears everything down in dependency order. Safe to call from
// any goroutine and more than once.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
		if a.bridge != nil {
			a.bridge.Stop()
		}
		if a.sess != nil {
			a.sess.Close(sessionCloseTimeout)
		}
		if a.queue != nil {
			a.queue.Close()
		}
		if a.screen != nil {
			a.screen.Fini()
		}
		if a.logFile != nil {
			a.logFile.Close()
		}
	})
}
