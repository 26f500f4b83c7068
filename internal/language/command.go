package language

import (
	"errors"

	"github.com/roach88/gaq/internal/ir"
)

// NewCommand builds a command from an identifier and raw arguments.
//
// At most Arity() arguments are coerced, in order, against the signature;
// extra arguments are ignored. The returned command targets the default
// tracker.
func (r *Registry) NewCommand(id Identifier, raw ...any) (Command, error) {
	desc, err := r.LookupByID(id)
	if err != nil {
		return Command{}, err
	}

	n := min(len(raw), len(desc.signature))
	params := make([]ir.Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := r.coerce(desc.signature[i], raw[i])
		if err != nil {
			var le *Error
			if errors.As(err, &le) {
				le.Command = string(id)
				le.Index = i
			}
			return Command{}, err
		}
		params = append(params, v)
	}

	return Command{descriptor: desc, params: params}, nil
}

// MustCommand is like NewCommand but panics on error.
// Use only in tests or when inputs are known to be valid.
func (r *Registry) MustCommand(id Identifier, raw ...any) Command {
	cmd, err := r.NewCommand(id, raw...)
	if err != nil {
		panic(err)
	}
	return cmd
}
