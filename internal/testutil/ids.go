package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator hands out predictable hotel IDs ("hotel-0001",
// "hotel-0002", ...) so store snapshots are stable. It satisfies
// store.IDGenerator.
type FixedIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
	ids    []string
}

// NewFixedIDGenerator creates a counter-based generator. An empty prefix
// defaults to "hotel".
func NewFixedIDGenerator(prefix string) *FixedIDGenerator {
	if prefix == "" {
		prefix = "hotel"
	}
	return &FixedIDGenerator{prefix: prefix}
}

// NewFixedIDList returns the given IDs in order and panics once they run
// out, which surfaces tests that import more rows than they planned for.
func NewFixedIDList(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// NewID returns the next ID.
func (g *FixedIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ids != nil {
		if g.n >= len(g.ids) {
			panic(fmt.Sprintf("FixedIDGenerator exhausted after %d IDs", len(g.ids)))
		}
		id := g.ids[g.n]
		g.n++
		return id
	}

	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
