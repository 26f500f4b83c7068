package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/session"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestPhases returns phases with one early custom var and one normal pageview.
func createTestPhases(page string) session.Phases {
	return session.Phases{
		Early: []ir.Segment{
			ir.NewSegment("_setCustomVar", ir.Int(1), ir.String("plan"), ir.String("gold"), ir.Int(3)),
		},
		Normal: []ir.Segment{
			ir.NewSegment("t1._trackPageview", ir.String(page)),
		},
	}
}
