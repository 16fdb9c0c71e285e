package events

import "sync/atomic"

// Sequencer hands out strictly increasing sequence numbers.
type Sequencer interface {
	Next() int64
}

// Clock is a monotonic logical clock. Safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next() returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
