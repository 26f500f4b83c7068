package language

import (
	"slices"

	"github.com/roach88/gaq/internal/ir"
)

// TypeTag names the type a positional argument is coerced to.
type TypeTag string

// Type tags understood by Coerce. Number is declared but has no coercion rules.
const (
	TypeString  TypeTag = "String"
	TypeInt     TypeTag = "Int"
	TypeBoolean TypeTag = "Boolean"
	TypeNumber  TypeTag = "Number"
)

// Identifier is the in-process key of a command. It is never serialized.
type Identifier string

// Built-in command identifiers.
const (
	SetAccount    Identifier = "set_account"
	AnonymizeIP   Identifier = "anonymize_ip"
	TrackPageview Identifier = "track_pageview"
	SetCustomVar  Identifier = "set_custom_var"
	TrackEvent    Identifier = "track_event"
)

// Definition is the input to Registry.Register.
type Definition struct {
	Identifier Identifier
	Name       string
	Signature  []TypeTag
	SortSlot   *int // nil means the fallback slot
}

// Slot returns a pointer to n for use in Definition.SortSlot.
func Slot(n int) *int {
	return &n
}

// Descriptor is the registered, immutable metadata of one command.
type Descriptor struct {
	identifier Identifier
	name       string
	signature  []TypeTag
	slot       int
	hasSlot    bool
}

func newDescriptor(def Definition) *Descriptor {
	d := &Descriptor{
		identifier: def.Identifier,
		name:       def.Name,
		signature:  slices.Clone(def.Signature),
	}
	if def.SortSlot != nil {
		d.slot = *def.SortSlot
		d.hasSlot = true
	}
	return d
}

// Identifier returns the in-process command key.
func (d *Descriptor) Identifier() Identifier { return d.identifier }

// Name returns the wire name.
func (d *Descriptor) Name() string { return d.name }

// Signature returns a copy of the parameter type list.
func (d *Descriptor) Signature() []TypeTag { return slices.Clone(d.signature) }

// Arity is the maximum number of positional parameters.
func (d *Descriptor) Arity() int { return len(d.signature) }

// SortSlot returns the declared priority and whether one was declared.
func (d *Descriptor) SortSlot() (int, bool) { return d.slot, d.hasSlot }

// Command is one instantiated, coerced command.
//
// Commands are values: WithTracker returns a modified copy and the receiver is
// never changed.
type Command struct {
	descriptor *Descriptor
	params     []ir.Value
	tracker    string
}

// Descriptor returns the shared descriptor.
func (c Command) Descriptor() *Descriptor { return c.descriptor }

// Name returns the wire name of the command.
func (c Command) Name() string {
	if c.descriptor == nil {
		return ""
	}
	return c.descriptor.name
}

// Params returns a copy of the coerced parameters.
func (c Command) Params() []ir.Value { return slices.Clone(c.params) }

// TrackerName returns the tracker namespace; "" means the default tracker.
func (c Command) TrackerName() string { return c.tracker }

// WithTracker returns a copy of c targeting the named tracker.
func (c Command) WithTracker(name string) Command {
	c.params = slices.Clone(c.params)
	c.tracker = name
	return c
}
