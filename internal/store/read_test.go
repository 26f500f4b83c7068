package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
	"github.com/roach88/gaq/internal/session"
)

func TestGetFlash_Missing(t *testing.T) {
	s := createTestStore(t)

	_, ok, err := s.GetFlash(context.Background(), "nobody", session.FlashKey)
	if err != nil {
		t.Fatalf("GetFlash() error: %v", err)
	}
	if ok {
		t.Error("GetFlash() ok = true for missing entry")
	}
}

func TestGetFlash_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := createTestPhases("/checkout?step=1&x=<y>")

	if _, err := s.SetFlash(ctx, "sess-1", session.FlashKey, want); err != nil {
		t.Fatalf("SetFlash() error: %v", err)
	}

	got, ok, err := s.GetFlash(ctx, "sess-1", session.FlashKey)
	if err != nil {
		t.Fatalf("GetFlash() error: %v", err)
	}
	if !ok {
		t.Fatal("GetFlash() ok = false")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetFlash() = %+v, want %+v", got, want)
	}
}

func TestGetFlash_CorruptRow(t *testing.T) {
	s := createTestStore(t)
	_, err := s.db.Exec(`
		INSERT INTO flash_entries (session_id, key, early, normal, digest)
		VALUES ('sess-1', ?, '[[1.5]]', '[]', 'x')
	`, session.FlashKey)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, _, err := s.GetFlash(context.Background(), "sess-1", session.FlashKey); err == nil {
		t.Error("GetFlash() succeeded on corrupt row")
	}
}

func TestSessions_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries, err := s.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("Sessions() on empty store = %#v, want empty non-nil", entries)
	}

	for _, id := range []string{"b", "a", "B"} {
		if _, err := s.SetFlash(ctx, id, session.FlashKey, createTestPhases("/"+id)); err != nil {
			t.Fatalf("SetFlash(%s) error: %v", id, err)
		}
	}

	entries, err = s.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.SessionID)
		if e.Early != 1 || e.Normal != 1 {
			t.Errorf("%s: early=%d normal=%d, want 1/1", e.SessionID, e.Early, e.Normal)
		}
		if len(e.Digest) != 64 {
			t.Errorf("%s: digest %q is not hex sha256", e.SessionID, e.Digest)
		}
	}
	if want := []string{"B", "a", "b"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("session order = %v, want %v", ids, want)
	}
}

func TestFlash_WithAdapter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	reg := language.Builtin()

	writer := session.NewAdapter(reg, s.Flash("sess-1"), nil)
	normal := []language.Command{
		reg.MustCommand(language.TrackEvent, "video", "play", "intro", 30, false),
		reg.MustCommand(language.TrackPageview, "/next").WithTracker("rollup"),
	}
	if err := writer.Save(ctx, nil, normal); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	early, got, err := session.NewAdapter(reg, s.Flash("sess-1"), nil).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(early) != 0 {
		t.Errorf("early = %v, want empty", early)
	}
	if !reflect.DeepEqual(got, normal) {
		t.Errorf("normal = %v, want %v", got, normal)
	}

	// Other sessions do not see the entry
	_, ok, err := s.Flash("sess-2").Get(ctx, session.FlashKey)
	if err != nil || ok {
		t.Errorf("sess-2 Get() = ok %v, err %v", ok, err)
	}

	p, _, _ := s.GetFlash(ctx, "sess-1", session.FlashKey)
	if tok, _ := p.Normal[1].Token(); tok != "rollup._trackPageview" {
		t.Errorf("stored token = %q", tok)
	}
	if p.Normal[0][5] != ir.Bool(false) {
		t.Errorf("stored flag = %v, want false", p.Normal[0][5])
	}
}

func TestFlash_WithAdapterKeepsDecomposedStrings(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	reg := language.Builtin()

	normal := []language.Command{reg.MustCommand(language.TrackEvent, "cat", "act", "cafe\u0301")}
	if err := session.NewAdapter(reg, s.Flash("s1"), nil).Save(ctx, nil, normal); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, got, err := session.NewAdapter(reg, s.Flash("s1"), nil).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, normal) {
		t.Errorf("normal = %v, want %v", got, normal)
	}
}
