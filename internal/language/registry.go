package language

import (
	"strings"
	"sync"
)

// Registry stores command descriptors and implements construction, sorting
// and the segment codec over them.
//
// Registration happens once at startup. After Freeze (or the first call that
// needs the fallback slot) the registry is read-only and safe for concurrent
// use without locking.
type Registry struct {
	byID   map[Identifier]*Descriptor
	byName map[string]*Descriptor
	order  []*Descriptor
	coerce CoerceFunc

	frozen       bool
	fallbackOnce sync.Once
	fallback     int
}

// Option configures a Registry.
type Option func(*Registry)

// WithCoercer replaces the default Coerce function.
func WithCoercer(fn CoerceFunc) Option {
	return func(r *Registry) {
		if fn != nil {
			r.coerce = fn
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[Identifier]*Descriptor),
		byName: make(map[string]*Descriptor),
		coerce: Coerce,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a command definition.
// Identifiers and wire names must be non-empty and unique.
func (r *Registry) Register(def Definition) error {
	if r.frozen {
		return &Error{Code: ErrCodeFrozen, Message: "registry is frozen", Command: string(def.Identifier), Index: -1}
	}
	def.Identifier = Identifier(strings.TrimSpace(string(def.Identifier)))
	def.Name = strings.TrimSpace(def.Name)
	if def.Identifier == "" {
		return &Error{Code: ErrCodeInvalidDefinition, Message: "command identifier is required", Index: -1}
	}
	if def.Name == "" {
		return &Error{Code: ErrCodeInvalidDefinition, Message: "command name is required", Command: string(def.Identifier), Index: -1}
	}
	if _, exists := r.byID[def.Identifier]; exists {
		return &Error{Code: ErrCodeDuplicate, Message: "identifier already registered", Command: string(def.Identifier), Index: -1}
	}
	if _, exists := r.byName[def.Name]; exists {
		return &Error{Code: ErrCodeDuplicate, Message: "wire name already registered", Command: def.Name, Index: -1}
	}

	desc := newDescriptor(def)
	r.byID[desc.identifier] = desc
	r.byName[desc.name] = desc
	r.order = append(r.order, desc)
	return nil
}

// MustRegister is like Register but panics on error.
// Use only for static vocabularies known to be valid.
func (r *Registry) MustRegister(defs ...Definition) *Registry {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Freeze computes the fallback slot and rejects further registration.
func (r *Registry) Freeze() *Registry {
	r.FallbackSlot()
	return r
}

// FallbackSlot returns the slot used by descriptors without one:
// one more than the highest declared slot, or 0 if none is declared.
// Computed once; the first call freezes the registry.
func (r *Registry) FallbackSlot() int {
	r.fallbackOnce.Do(func() {
		r.frozen = true
		highest, found := 0, false
		for _, d := range r.order {
			if !d.hasSlot {
				continue
			}
			if !found || d.slot > highest {
				highest, found = d.slot, true
			}
		}
		if found {
			r.fallback = highest + 1
		}
	})
	return r.fallback
}

// LookupByID returns the descriptor registered under id.
func (r *Registry) LookupByID(id Identifier) (*Descriptor, error) {
	if d, ok := r.byID[id]; ok {
		return d, nil
	}
	return nil, newUnknownCommandError(string(id))
}

// LookupByName returns the descriptor with the given wire name.
func (r *Registry) LookupByName(name string) (*Descriptor, error) {
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	return nil, newUnknownCommandError(name)
}

// Descriptors returns a snapshot of descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	copy(out, r.order)
	return out
}
