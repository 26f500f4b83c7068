package language

import "sync"

// BuiltinDefinitions is the fixed _gaq vocabulary.
var BuiltinDefinitions = []Definition{
	{Identifier: SetAccount, Name: "_setAccount", Signature: []TypeTag{TypeString}, SortSlot: Slot(0)},
	{Identifier: AnonymizeIP, Name: "_gat._anonymizeIp", Signature: []TypeTag{}, SortSlot: Slot(1)},
	{Identifier: TrackPageview, Name: "_trackPageview", Signature: []TypeTag{TypeString}, SortSlot: Slot(2)},
	{Identifier: SetCustomVar, Name: "_setCustomVar", Signature: []TypeTag{TypeInt, TypeString, TypeString, TypeInt}, SortSlot: Slot(3)},
	{Identifier: TrackEvent, Name: "_trackEvent", Signature: []TypeTag{TypeString, TypeString, TypeString, TypeInt, TypeBoolean}},
}

var builtin = sync.OnceValue(func() *Registry {
	return NewBuiltinRegistry()
})

// Builtin returns the process-wide frozen registry of the built-in vocabulary.
func Builtin() *Registry {
	return builtin()
}

// NewBuiltinRegistry creates a fresh frozen registry of the built-in
// vocabulary, configured with opts.
func NewBuiltinRegistry(opts ...Option) *Registry {
	return NewRegistry(opts...).MustRegister(BuiltinDefinitions...).Freeze()
}
