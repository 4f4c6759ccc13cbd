package event

import "sync"

// DefaultQueueSize is the default handoff queue capacity.
const DefaultQueueSize = 4096

// Queue is the bounded FIFO handoff between the I/O goroutine and the UI
// goroutine. Producers block when the queue is full, which pushes
// backpressure onto the transport read; the single consumer drains without
// blocking. Ordering of the full event stream is strictly preserved:
// scroll/line/flush ordering within a frame is load-bearing.
type Queue struct {
	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
	wake      func()
}

// NewQueue creates a queue with the given capacity. The wake callback, if
// non-nil, is invoked after every successful push so the consumer can
// schedule a drain (e.g. by posting a terminal interrupt event). It may be
// called from any goroutine.
func NewQueue(size int, wake func()) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
		wake: wake,
	}
}

// Push appends an event, blocking while the queue is full. Push after Close
// returns immediately, dropping the event.
func (q *Queue) Push(ev Event) {
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.ch <- ev:
		if q.wake != nil {
			q.wake()
		}
	case <-q.done:
	}
}

// Drain delivers every currently queued event to apply, in FIFO order,
// without blocking. It returns the number of events applied.
func (q *Queue) Drain(apply func(Event)) int {
	n := 0
	for {
		select {
		case ev := <-q.ch:
			apply(ev)
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Close marks the queue closed, unblocking any producer stuck on a full
// queue. Subsequent pushes are dropped; queued events remain drainable.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}
