package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
)

type failingFlash struct{ err error }

func (f failingFlash) Get(context.Context, string) (Phases, bool, error) {
	return Phases{}, false, f.err
}

func (f failingFlash) Set(context.Context, string, Phases) error { return f.err }

func TestAdapter_LoadMissingIsEmpty(t *testing.T) {
	a := NewAdapter(language.Builtin(), NewMemoryFlash(), nil)

	early, normal, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, early)
	assert.NotNil(t, normal)
	assert.Empty(t, early)
	assert.Empty(t, normal)
}

func TestAdapter_SaveThenLoad(t *testing.T) {
	reg := language.Builtin()
	ctx := context.Background()
	a := NewAdapter(reg, NewMemoryFlash(), nil)

	early := []language.Command{reg.MustCommand(language.SetCustomVar, 1, "plan", "gold", 1)}
	normal := []language.Command{
		reg.MustCommand(language.TrackEvent, "signup", "complete"),
		reg.MustCommand(language.TrackPageview, "/welcome").WithTracker("rollup"),
	}
	require.NoError(t, a.Save(ctx, early, normal))

	gotEarly, gotNormal, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, early, gotEarly)
	assert.Equal(t, normal, gotNormal)
}

func TestAdapter_SaveWritesSegments(t *testing.T) {
	reg := language.Builtin()
	ctx := context.Background()
	flash := NewMemoryFlash()
	a := NewAdapter(reg, flash, nil)

	require.NoError(t, a.Save(ctx, nil, []language.Command{reg.MustCommand(language.TrackPageview).WithTracker("t1")}))

	p, ok, err := flash.Get(ctx, FlashKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, p.Early)
	assert.Equal(t, []ir.Segment{ir.NewSegment("t1._trackPageview")}, p.Normal)
}

func TestAdapter_SaveEmptyConsumes(t *testing.T) {
	reg := language.Builtin()
	ctx := context.Background()
	flash := NewMemoryFlash()
	a := NewAdapter(reg, flash, nil)

	require.NoError(t, a.Save(ctx, nil, []language.Command{reg.MustCommand(language.TrackPageview)}))
	require.NoError(t, a.Save(ctx, nil, nil))

	p, ok, err := flash.Get(ctx, FlashKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, p.Empty())
}

func TestAdapter_LoadDecodesPhasesIndependently(t *testing.T) {
	ctx := context.Background()
	flash := NewMemoryFlash()
	require.NoError(t, flash.Set(ctx, FlashKey, Phases{
		Early:  []ir.Segment{ir.NewSegment("_setAccount", ir.String("UA-1"))},
		Normal: []ir.Segment{ir.NewSegment("_bogus")},
	}))

	_, _, err := NewAdapter(language.Builtin(), flash, nil).Load(ctx)
	require.Error(t, err)
	assert.True(t, language.IsUnknownCommand(err))
	assert.Contains(t, err.Error(), "normal phase")
}

func TestAdapter_LoadMalformedEarly(t *testing.T) {
	ctx := context.Background()
	flash := NewMemoryFlash()
	require.NoError(t, flash.Set(ctx, FlashKey, Phases{Early: []ir.Segment{{ir.Int(3)}}}))

	_, _, err := NewAdapter(language.Builtin(), flash, nil).Load(ctx)
	assert.True(t, language.IsMalformedSegment(err))
	assert.Contains(t, err.Error(), "early phase")
}

func TestAdapter_FlashErrors(t *testing.T) {
	boom := errors.New("boom")
	a := NewAdapter(language.Builtin(), failingFlash{err: boom}, nil)

	_, _, err := a.Load(context.Background())
	assert.ErrorIs(t, err, boom)

	err = a.Save(context.Background(), nil, nil)
	assert.ErrorIs(t, err, boom)
}
