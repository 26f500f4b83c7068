package config

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Sentinel categories for configuration errors, matched with errors.Is.
var (
	ErrVariable = errors.New("invalid variable")
	ErrTracker  = errors.New("invalid tracker")
	ErrSchema   = errors.New("invalid configuration")
)

// Error describes a configuration problem at a field path.
type Error struct {
	Kind    error // one of the sentinels above
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

func variableError(field, format string, args ...any) *Error {
	return &Error{Kind: ErrVariable, Field: field, Message: fmt.Sprintf(format, args...)}
}

func trackerError(field, format string, args ...any) *Error {
	return &Error{Kind: ErrTracker, Field: field, Message: fmt.Sprintf(format, args...)}
}

// formatCUEError extracts position info from the first CUE error.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Kind: ErrSchema, Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	e := &Error{Kind: ErrSchema, Field: "cue", Message: first.Error()}
	if path := first.Path(); len(path) > 0 {
		e.Field = strings.Join(path, ".")
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
