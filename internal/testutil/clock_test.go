package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicClock_Next(t *testing.T) {
	clock := NewDeterministicClock()
	assert.Equal(t, int64(0), clock.Current())

	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(2), clock.Current())
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock()
	clock.Next()
	clock.Next()

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestDeterministicClockAt(t *testing.T) {
	clock := NewDeterministicClockAt(100)
	assert.Equal(t, int64(101), clock.Next())

	clock.Reset()
	assert.Equal(t, int64(100), clock.Current())
}

func TestDeterministicClock_ThreadSafe(t *testing.T) {
	clock := NewDeterministicClock()
	const goroutines, calls = 50, 100

	var wg sync.WaitGroup
	results := make([][]int64, goroutines)
	for i := 0; i < goroutines; i++ {
		results[i] = make([]int64, calls)
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				results[idx][j] = clock.Next()
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, goroutines*calls)
	for _, row := range results {
		for _, v := range row {
			require.False(t, seen[v], "duplicate value %d", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, goroutines*calls)
	assert.Equal(t, int64(goroutines*calls), clock.Current())
}
