package store

import (
	"fmt"

	"github.com/roach88/gaq/internal/ir"
)

// marshalSegments converts a segment list to JSON TEXT for storage.
// Strings are written byte for byte. A nil list is stored as "[]".
func marshalSegments(segs []ir.Segment) (string, error) {
	data, err := ir.MarshalExact(segs)
	if err != nil {
		return "", fmt.Errorf("marshal segments: %w", err)
	}
	return string(data), nil
}

// unmarshalSegments parses stored JSON TEXT back to segments.
// Integers keep full int64 precision.
func unmarshalSegments(data string) ([]ir.Segment, error) {
	segs, err := ir.UnmarshalSegments([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal segments: %w", err)
	}
	return segs, nil
}
