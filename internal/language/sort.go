package language

import (
	"cmp"
	"slices"
)

// Sort orders cmds in place by (effective slot, original index).
//
// The effective slot is the descriptor's slot, or FallbackSlot for
// descriptors without one. The sort is stable, so commands sharing a slot keep
// their input order.
func (r *Registry) Sort(cmds []Command) {
	fallback := r.FallbackSlot()
	slices.SortStableFunc(cmds, func(a, b Command) int {
		return cmp.Compare(effectiveSlot(a, fallback), effectiveSlot(b, fallback))
	})
}

func effectiveSlot(c Command, fallback int) int {
	if c.descriptor != nil && c.descriptor.hasSlot {
		return c.descriptor.slot
	}
	return fallback
}
