package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Segment is the flat wire encoding of one command:
// element 0 is the composite String token, elements 1..N the parameters.
type Segment []Value

// NewSegment creates a Segment from a token and parameters.
func NewSegment(token string, params ...Value) Segment {
	seg := make(Segment, 0, len(params)+1)
	seg = append(seg, String(token))
	return append(seg, params...)
}

// Token returns the segment's first element if it is a String.
func (s Segment) Token() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	tok, ok := s[0].(String)
	return string(tok), ok
}

// Params returns the elements after the token.
func (s Segment) Params() []Value {
	if len(s) < 2 {
		return nil
	}
	return s[1:]
}

// MarshalJSON encodes the segment as a JSON array.
func (s Segment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("segment[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON array of scalars into a Segment.
// Integers keep full int64 precision; floats and nested values are rejected.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = make(Segment, len(raw))
	for i, elem := range raw {
		v, err := unmarshalValue(elem)
		if err != nil {
			return fmt.Errorf("segment[%d]: %w", i, err)
		}
		(*s)[i] = v
	}
	return nil
}

// MarshalPayload produces the JSON payload for a finalized segment list.
// This is the literal value handed to the page as the _gaq push arguments, so
// unlike MarshalCanonical it keeps HTML and line-separator escaping.
func MarshalPayload(segs []Segment) ([]byte, error) {
	if segs == nil {
		segs = []Segment{}
	}
	data, err := json.Marshal(segs)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}

// UnmarshalSegments parses a JSON array of segments.
func UnmarshalSegments(data []byte) ([]Segment, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Segment{}, nil
	}
	var segs []Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, fmt.Errorf("unmarshal segments: %w", err)
	}
	if segs == nil {
		segs = []Segment{}
	}
	return segs, nil
}
