package testutil

import "sync"

// DeterministicClock is a resettable logical clock for tests. It satisfies
// events.Sequencer, so a scenario replayed twice yields the same event
// sequence numbers.
type DeterministicClock struct {
	mu    sync.Mutex
	start int64
	seq   int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// NewDeterministicClockAt creates a clock whose first Next returns start+1.
func NewDeterministicClockAt(start int64) *DeterministicClock {
	return &DeterministicClock{start: start, seq: start}
}

// Next advances the clock and returns the new value.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last value handed out without advancing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to its starting value.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = c.start
}
