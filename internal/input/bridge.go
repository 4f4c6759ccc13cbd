// Package input translates local key events into Neovim's key notation and
// forwards them to the remote session through a bounded FIFO queue, so the
// UI goroutine never blocks on the transport.
package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termvim/internal/logging"
)

// DefaultQueueSize is the default capacity of the keystroke queue.
const DefaultQueueSize = 256

// Sender delivers one translated key sequence to the remote session.
// It runs on the bridge's forwarder goroutine, never on the UI goroutine.
type Sender func(keys string) error

// Bridge queues translated keystrokes from the UI goroutine and forwards
// them in typing order from a dedicated goroutine. Pushing never blocks:
// when the queue is full the keystroke is dropped and logged.
type Bridge struct {
	send     Sender
	ch       chan string
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	mappings map[string]string
	log      *logging.Logger
}

// NewBridge creates a bridge that forwards through send.
func NewBridge(send Sender, size int, log *logging.Logger) *Bridge {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = logging.Null
	}
	return &Bridge{
		send: send,
		ch:   make(chan string, size),
		done: make(chan struct{}),
		log:  log.WithComponent("input"),
	}
}

// SetMappings installs user key mappings (Neovim notation to replacement),
// applied during translation. Call before Start.
func (b *Bridge) SetMappings(m map[string]string) {
	b.mappings = m
}

// Translate converts a tcell key event into the key sequence to send,
// applying user mappings. Returns "" when the event maps to nothing.
func (b *Bridge) Translate(ev *tcell.EventKey) string {
	keys := TranslateKey(ev)
	if keys == "" {
		return ""
	}
	if mapped, ok := b.mappings[keys]; ok {
		return mapped
	}
	return keys
}

// Start launches the forwarder goroutine.
func (b *Bridge) Start() {
	b.wg.Add(1)
	go b.forward()
}

// Push queues a key sequence for delivery. It never blocks; a full queue
// drops the keystroke.
func (b *Bridge) Push(keys string) bool {
	if keys == "" {
		return false
	}
	select {
	case b.ch <- keys:
		return true
	default:
		b.log.Warn("input queue full, dropping %q", keys)
		return false
	}
}

// Stop shuts down the forwarder. Queued keystrokes that have not been sent
// yet are discarded.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}

// forward drains the queue in FIFO order, delivering each keystroke with a
// fire-and-forget send.
func (b *Bridge) forward() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return
		case keys := <-b.ch:
			if err := b.send(keys); err != nil {
				b.log.Warn("sending %q failed: %v", keys, err)
			}
		}
	}
}
