// Package id issues time-sortable identifiers for simulation runs.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator issues ULID strings from one monotonic entropy source, so
// identifiers minted in the same millisecond still sort by creation order.
// Safe for concurrent use; the zero value is not usable, construct with
// NewGenerator.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator returns a generator drawing entropy from crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Next returns the next identifier.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), g.entropy).String()
}
