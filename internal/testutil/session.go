package testutil

import (
	"fmt"
	"sync"
)

// FixedSessionGenerator returns the same session id every time.
//
// Runs that share one id read and write the same flash entry, which is what
// a multi-request test wants.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator for id.
// If id is empty, Generate() returns "test-session-default".
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session id.
//
// Implements session.IDGenerator interface.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}

// SequenceSessionGenerator returns "test-session-0001", "test-session-0002", ...
//
// The ids sort lexically in generation order, like UUIDv7, for the first
// 9999 calls.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequenceSessionGenerator struct {
	mu  sync.Mutex
	seq int
}

// NewSequenceSessionGenerator creates a generator whose first id ends in 0001.
func NewSequenceSessionGenerator() *SequenceSessionGenerator {
	return &SequenceSessionGenerator{}
}

// Generate returns the next id in the sequence.
func (g *SequenceSessionGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("test-session-%04d", g.seq)
}

// Reset restarts the sequence. The next call to Generate() ends in 0001.
func (g *SequenceSessionGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
