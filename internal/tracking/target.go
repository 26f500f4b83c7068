package tracking

import (
	"fmt"

	"github.com/roach88/gaq/internal/language"
)

// Target pushes commands for one request onto one tracker.
type Target struct {
	h       *Handle
	into    *phases
	tracker string
}

// Tracker returns a target bound to the named tracker. The name must be
// declared in the configuration; "" selects the default tracker.
func (t *Target) Tracker(name string) (*Target, error) {
	if _, ok := t.h.cfg.Tracker(name); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTracker, name)
	}
	return &Target{h: t.h, into: t.into, tracker: name}, nil
}

// TrackerName returns the bound tracker; "" is the default tracker.
func (t *Target) TrackerName() string { return t.tracker }

// Push adds any vocabulary command in the normal phase.
func (t *Target) Push(id language.Identifier, raw ...any) error {
	return t.push(false, id, raw...)
}

// TrackEvent pushes a track_event. extra holds the optional label, value and
// non-interaction flag; nil entries are skipped.
func (t *Target) TrackEvent(category, action string, extra ...any) error {
	args := []any{category, action}
	for _, v := range extra {
		if v != nil {
			args = append(args, v)
		}
	}
	return t.push(false, language.TrackEvent, args...)
}

// SetVariable pushes a set_custom_var for a declared variable in the early
// phase, so it precedes the commands it annotates.
func (t *Target) SetVariable(name string, value any) error {
	v, ok := t.h.cfg.Variable(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return t.push(true, language.SetCustomVar, v.Slot, v.Name, value, int(v.Scope))
}

func (t *Target) push(early bool, id language.Identifier, raw ...any) error {
	cmd, err := t.h.reg.NewCommand(id, raw...)
	if err != nil {
		return err
	}
	if t.tracker != "" {
		cmd = cmd.WithTracker(t.tracker)
	}
	t.into.push(early, cmd)
	return nil
}
