package events

import "sync"

// queue is an unbounded, thread-safe FIFO of events.
//
// A buffered signal channel of size 1 lets the dispatch loop wait for work
// in a select alongside ctx.Done().
type queue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	signal chan struct{}
}

func newQueue() *queue {
	return &queue{
		events: make([]Event, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// enqueue appends e. Returns false if the queue is closed.
func (q *queue) enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.events = append(q.events, e)

	// Non-blocking; the buffer coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// tryDequeue removes the front event without blocking.
func (q *queue) tryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]
	// Clear the slot so the backing array does not pin the value.
	q.events[0] = Event{}
	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}
	return e, true
}

// wait returns a channel that signals when events may be available.
// It is closed when the queue is closed.
func (q *queue) wait() <-chan struct{} {
	return q.signal
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// close stops further enqueues and wakes waiters. Idempotent.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
