package session

import (
	"context"
	"slices"
	"sync"

	"github.com/roach88/gaq/internal/ir"
)

// FlashKey is the only key the adapter reads or writes.
const FlashKey = "analytics_instructions"

// Phases is the persisted pair of encoded command lists carried to the next
// request. Early commands are emitted before normal ones.
type Phases struct {
	Early  []ir.Segment
	Normal []ir.Segment
}

// Empty reports whether both phases are empty.
func (p Phases) Empty() bool {
	return len(p.Early) == 0 && len(p.Normal) == 0
}

// Flash is a per-session key/value store that lives for one request hop.
//
// Get returns ok=false when nothing is stored under key. Set replaces any
// previous value.
type Flash interface {
	Get(ctx context.Context, key string) (Phases, bool, error)
	Set(ctx context.Context, key string, p Phases) error
}

// MemoryFlash is an in-process Flash.
//
// Thread-safety: MemoryFlash is safe for concurrent use via internal mutex.
type MemoryFlash struct {
	mu      sync.Mutex
	entries map[string]Phases
}

// NewMemoryFlash creates an empty MemoryFlash.
func NewMemoryFlash() *MemoryFlash {
	return &MemoryFlash{entries: make(map[string]Phases)}
}

// Get implements Flash.
func (f *MemoryFlash) Get(_ context.Context, key string) (Phases, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.entries[key]
	if !ok {
		return Phases{}, false, nil
	}
	return clonePhases(p), true, nil
}

// Set implements Flash.
func (f *MemoryFlash) Set(_ context.Context, key string, p Phases) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = clonePhases(p)
	return nil
}

func clonePhases(p Phases) Phases {
	return Phases{Early: cloneSegments(p.Early), Normal: cloneSegments(p.Normal)}
}

func cloneSegments(segs []ir.Segment) []ir.Segment {
	out := make([]ir.Segment, len(segs))
	for i, s := range segs {
		out[i] = slices.Clone(s)
	}
	return out
}
