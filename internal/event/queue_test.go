package event

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(16, nil)
	for i := 0; i < 10; i++ {
		q.Push(CursorGoto{Grid: 1, Row: i})
	}

	var rows []int
	q.Drain(func(ev Event) {
		cg, ok := ev.(CursorGoto)
		if !ok {
			t.Fatalf("unexpected event type %T", ev)
		}
		rows = append(rows, cg.Row)
	})

	if len(rows) != 10 {
		t.Fatalf("expected 10 events, got %d", len(rows))
	}
	for i, r := range rows {
		if r != i {
			t.Errorf("event %d out of order: got row %d", i, r)
		}
	}
}

func TestQueueWakeCalledPerPush(t *testing.T) {
	var wakes atomic.Int64
	q := NewQueue(8, func() { wakes.Add(1) })

	q.Push(Flush{})
	q.Push(Flush{})
	q.Push(Flush{})

	if got := wakes.Load(); got != 3 {
		t.Errorf("expected 3 wake calls, got %d", got)
	}
}

func TestQueueDrainEmpties(t *testing.T) {
	q := NewQueue(8, nil)
	q.Push(GridClear{Grid: 1})
	q.Push(Flush{})

	if n := q.Drain(func(Event) {}); n != 2 {
		t.Errorf("first drain should deliver 2 events, got %d", n)
	}
	if n := q.Drain(func(Event) {}); n != 0 {
		t.Errorf("second drain should deliver nothing, got %d", n)
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, len=%d", q.Len())
	}
}

func TestQueueCloseUnblocksProducer(t *testing.T) {
	q := NewQueue(1, nil)
	q.Push(Flush{}) // fill

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Push(Flush{}) // blocks until Close
	}()

	q.Close()
	wg.Wait() // fails by timeout if Close does not unblock

	if n := q.Drain(func(Event) {}); n != 1 {
		t.Errorf("queued events should survive close, got %d", n)
	}
}

func TestQueuePushAfterCloseDropped(t *testing.T) {
	q := NewQueue(4, nil)
	q.Close()
	q.Push(Flush{})
	if q.Len() != 0 {
		t.Error("push after close should be dropped")
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue(1024, nil)
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(Flush{})
			}
		}()
	}
	wg.Wait()

	if n := q.Drain(func(Event) {}); n != 400 {
		t.Errorf("expected 400 events, got %d", n)
	}
}
