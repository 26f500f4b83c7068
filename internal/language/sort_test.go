package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/gaq/internal/ir"
)

func TestSortStableWithFallback(t *testing.T) {
	reg := Builtin()
	cmds := []Command{
		reg.MustCommand(TrackEvent, "first", "a"),
		reg.MustCommand(SetAccount, "UA-1"),
		reg.MustCommand(TrackPageview, "/p"),
		reg.MustCommand(TrackEvent, "second", "b"),
	}

	reg.Sort(cmds)

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"_setAccount", "_trackPageview", "_trackEvent", "_trackEvent"}, names)
	assert.Equal(t, ir.String("first"), cmds[2].Params()[0])
	assert.Equal(t, ir.String("second"), cmds[3].Params()[0])
}

func TestSortFullVocabulary(t *testing.T) {
	reg := Builtin()
	cmds := []Command{
		reg.MustCommand(TrackEvent, "e"),
		reg.MustCommand(SetCustomVar, 1, "plan", "gold", 3),
		reg.MustCommand(TrackPageview).WithTracker("foo"),
		reg.MustCommand(AnonymizeIP),
		reg.MustCommand(SetAccount, "UA-2").WithTracker("foo"),
		reg.MustCommand(TrackPageview),
		reg.MustCommand(SetAccount, "UA-1"),
	}

	reg.Sort(cmds)

	got := reg.Encode(cmds)
	want := []ir.Segment{
		ir.NewSegment("foo._setAccount", ir.String("UA-2")),
		ir.NewSegment("_setAccount", ir.String("UA-1")),
		ir.NewSegment("_gat._anonymizeIp"),
		ir.NewSegment("foo._trackPageview"),
		ir.NewSegment("_trackPageview"),
		ir.NewSegment("_setCustomVar", ir.Int(1), ir.String("plan"), ir.String("gold"), ir.Int(3)),
		ir.NewSegment("_trackEvent", ir.String("e")),
	}
	assert.Equal(t, want, got)
}

func TestSortEmpty(t *testing.T) {
	var cmds []Command
	Builtin().Sort(cmds)
	assert.Empty(t, cmds)
}

func TestSortUndeclaredGoesLast(t *testing.T) {
	reg := NewRegistry().MustRegister(
		Definition{Identifier: "low", Name: "_low", SortSlot: Slot(0)},
		Definition{Identifier: "none", Name: "_none"},
		Definition{Identifier: "high", Name: "_high", SortSlot: Slot(1)},
	)
	cmds := []Command{
		reg.MustCommand("none"),
		reg.MustCommand("high"),
		reg.MustCommand("low"),
	}

	reg.Sort(cmds)

	assert.Equal(t, "_low", cmds[0].Name())
	assert.Equal(t, "_high", cmds[1].Name())
	assert.Equal(t, "_none", cmds[2].Name())
}
