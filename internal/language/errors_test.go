package language

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"command and index",
			&Error{Code: ErrCodeInvalidArgument, Message: "bad", Command: "track_event", Index: 3},
			"INVALID_ARGUMENT: bad (command=track_event, index=3)",
		},
		{
			"command only",
			&Error{Code: ErrCodeUnknownCommand, Message: "no command registered", Command: "x", Index: -1},
			"UNKNOWN_COMMAND: no command registered (command=x)",
		},
		{
			"index only",
			&Error{Code: ErrCodeMalformedSegment, Message: "empty segment", Index: 0},
			"MALFORMED_SEGMENT: empty segment (index=0)",
		},
		{
			"bare",
			&Error{Code: ErrCodeNotImplemented, Message: "nope", Index: -1},
			"NOT_IMPLEMENTED: nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorHelpersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("load flash: %w", newUnknownCommandError("_x"))

	assert.True(t, IsUnknownCommand(wrapped))
	assert.False(t, IsUnknownType(wrapped))
	assert.Equal(t, ErrCodeUnknownCommand, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}
