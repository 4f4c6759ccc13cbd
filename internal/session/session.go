// Package session owns the connection to the embedded Neovim process: it
// spawns the child, attaches as an ext_linegrid UI, decodes redraw batches
// into events, and forwards input. All decoding happens on the RPC serve
// goroutine; decoded events cross to the UI goroutine only through the
// handoff queue, and errors observed here are surfaced on the next UI tick
// via Err.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/logging"
)

// Config describes how to launch and attach to Neovim.
type Config struct {
	// Command is the nvim executable.
	Command string
	// Args are passed to the child process. They must include --embed.
	Args []string
	// Cols and Rows are the initial UI dimensions.
	Cols int
	Rows int
}

// DefaultConfig returns a config for an embedded headless child.
func DefaultConfig() Config {
	return Config{
		Command: "nvim",
		Args:    []string{"--embed", "--headless"},
		Cols:    80,
		Rows:    25,
	}
}

// Session is an attached Neovim UI session.
type Session struct {
	v         *nvim.Nvim
	events    *event.Queue
	log       *logging.Logger
	serveDone chan struct{}

	mu  sync.Mutex
	err error
}

// Attach spawns the Neovim child process, registers the redraw handler, and
// attaches the UI with the linegrid extension.
func Attach(cfg Config, events *event.Queue, log *logging.Logger) (*Session, error) {
	if log == nil {
		log = logging.Null
	}
	s := &Session{
		events:    events,
		log:       log.WithComponent("session"),
		serveDone: make(chan struct{}),
	}

	v, err := nvim.NewChildProcess(
		nvim.ChildProcessCommand(cfg.Command),
		nvim.ChildProcessArgs(cfg.Args...),
		nvim.ChildProcessServe(false),
	)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", cfg.Command, err)
	}
	s.v = v

	if err := v.RegisterHandler("redraw", s.handleRedraw); err != nil {
		_ = v.Close()
		return nil, fmt.Errorf("registering redraw handler: %w", err)
	}

	// The serve loop is the I/O goroutine: it blocks on the transport
	// read and runs notification handlers.
	go func() {
		defer close(s.serveDone)
		if err := v.Serve(); err != nil {
			s.record(fmt.Errorf("nvim connection: %w", err))
		}
	}()

	opts := map[string]any{
		"rgb":          true,
		"ext_linegrid": true,
	}
	if err := v.AttachUI(cfg.Cols, cfg.Rows, opts); err != nil {
		_ = v.Close()
		return nil, fmt.Errorf("attaching UI: %w", err)
	}

	s.log.Info("attached to %s (%dx%d)", cfg.Command, cfg.Cols, cfg.Rows)
	return s, nil
}

// handleRedraw runs on the serve goroutine for every redraw notification.
// It only decodes and enqueues; it never touches engine state.
func (s *Session) handleRedraw(updates ...[]any) {
	for _, update := range updates {
		events, err := decodeUpdate(update)
		if err != nil {
			// Shape errors are rejected at this boundary and never
			// reach the applier.
			s.log.Warn("rejecting malformed update: %v", err)
			continue
		}
		for _, ev := range events {
			s.events.Push(ev)
		}
	}
}

// Input forwards a key sequence in Neovim notation. Fire-and-forget: the
// caller does not await a response beyond transport errors.
func (s *Session) Input(keys string) error {
	_, err := s.v.Input(keys)
	return err
}

// TryResize asks Neovim to adopt new UI dimensions.
func (s *Session) TryResize(cols, rows int) error {
	return s.v.TryResizeUI(cols, rows)
}

// Edit opens a file in the remote instance.
func (s *Session) Edit(path string) error {
	return s.v.Command(fmt.Sprintf("edit %s", path))
}

// Err returns the first error observed on the I/O goroutine, or nil. The UI
// loop polls it at every drain tick.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Close signals the child to stop, unblocks the serve loop's pending read,
// and joins it with a bounded wait. A join timeout is non-fatal: the
// process is exiting regardless.
func (s *Session) Close(timeout time.Duration) {
	if err := s.v.Close(); err != nil {
		s.log.Debug("closing nvim: %v", err)
	}
	select {
	case <-s.serveDone:
	case <-time.After(timeout):
		s.log.Warn("nvim serve loop did not exit within %s", timeout)
	}
	s.events.Close()
}
