package language

import (
	"errors"
	"fmt"
)

// Error represents a failure detected while building, decoding or
// registering commands.
//
// Every Error is fatal to the operation that produced it: there is no partial
// result and no retry. Callers treat these as programming or configuration
// errors, never as transient conditions.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Command is the identifier or wire name involved, if any.
	Command string

	// Type is the signature type tag involved (for coercion errors).
	Type TypeTag

	// Index is the argument or segment position involved, or -1.
	Index int
}

// ErrorCode categorizes language errors.
type ErrorCode string

const (
	// ErrCodeUnknownCommand indicates no descriptor matches an identifier or wire name.
	ErrCodeUnknownCommand ErrorCode = "UNKNOWN_COMMAND"

	// ErrCodeUnknownType indicates a signature references an unrecognized type tag.
	ErrCodeUnknownType ErrorCode = "UNKNOWN_TYPE"

	// ErrCodeInvalidArgument indicates a value cannot be coerced to its declared type.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeNotImplemented indicates a declared type with no coercion rules (Number).
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// ErrCodeMalformedSegment indicates a segment without a string token.
	ErrCodeMalformedSegment ErrorCode = "MALFORMED_SEGMENT"

	// ErrCodeDuplicate indicates an identifier or wire name is already registered.
	ErrCodeDuplicate ErrorCode = "DUPLICATE"

	// ErrCodeInvalidDefinition indicates a definition without an identifier or wire name.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"

	// ErrCodeFrozen indicates registration after the registry was frozen.
	ErrCodeFrozen ErrorCode = "FROZEN"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Command != "" && e.Index >= 0:
		return fmt.Sprintf("%s: %s (command=%s, index=%d)", e.Code, e.Message, e.Command, e.Index)
	case e.Command != "":
		return fmt.Sprintf("%s: %s (command=%s)", e.Code, e.Message, e.Command)
	case e.Index >= 0:
		return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsUnknownCommand returns true if err is an unknown command error.
func IsUnknownCommand(err error) bool { return CodeOf(err) == ErrCodeUnknownCommand }

// IsUnknownType returns true if err is an unknown type error.
func IsUnknownType(err error) bool { return CodeOf(err) == ErrCodeUnknownType }

// IsInvalidArgument returns true if err is an invalid argument error.
func IsInvalidArgument(err error) bool { return CodeOf(err) == ErrCodeInvalidArgument }

// IsNotImplemented returns true if err is a not implemented error.
func IsNotImplemented(err error) bool { return CodeOf(err) == ErrCodeNotImplemented }

// IsMalformedSegment returns true if err is a malformed segment error.
func IsMalformedSegment(err error) bool { return CodeOf(err) == ErrCodeMalformedSegment }

func newUnknownCommandError(command string) *Error {
	return &Error{
		Code:    ErrCodeUnknownCommand,
		Message: "no command registered",
		Command: command,
		Index:   -1,
	}
}

func newUnknownTypeError(tag TypeTag) *Error {
	return &Error{
		Code:    ErrCodeUnknownType,
		Message: fmt.Sprintf("unable to coerce unknown type %q", string(tag)),
		Type:    tag,
		Index:   -1,
	}
}

func newInvalidArgumentError(tag TypeTag, raw any, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("cannot coerce %T(%v) to %s: %s", raw, raw, tag, reason),
		Type:    tag,
		Index:   -1,
	}
}

func newNotImplementedError(tag TypeTag) *Error {
	return &Error{
		Code:    ErrCodeNotImplemented,
		Message: fmt.Sprintf("%q coercion not implemented", string(tag)),
		Type:    tag,
		Index:   -1,
	}
}

func newMalformedSegmentError(index int, reason string) *Error {
	return &Error{
		Code:    ErrCodeMalformedSegment,
		Message: reason,
		Index:   index,
	}
}
