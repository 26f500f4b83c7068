package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a sealed interface representing coerced command parameter values.
// Only Null, String, Int and Bool implement this.
// NO Float - the Number signature type has no defined semantics.
type Value interface {
	irValue() // Sealed - only these types implement it
}

// Null represents a JSON null found in previously stored segments.
// Coercion never produces it; decoding tolerates it for round-tripping.
type Null struct{}

func (Null) irValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String represents a string parameter or segment token.
type String string

func (String) irValue() {}

// Int represents an integer parameter.
// Always int64, never float64.
type Int int64

func (Int) irValue() {}

// Bool represents a boolean parameter.
type Bool bool

func (Bool) irValue() {}

// GoValue returns the plain Go value behind v (nil, string, int64 or bool).
func GoValue(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Bool:
		return bool(val)
	default:
		return nil
	}
}

// Text renders v the way it appears in human-readable listings.
func Text(v Value) string {
	switch val := v.(type) {
	case String:
		return strconv.Quote(string(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Bool:
		return strconv.FormatBool(bool(val))
	case Null:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MarshalValue marshals a Value to JSON bytes.
// NOTE: This is NOT canonical marshaling. Use MarshalExact for storage.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Int:
		return json.Marshal(int64(val))
	case Bool:
		return json.Marshal(bool(val))
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

// unmarshalValue decodes a single JSON scalar into the matching Value.
// Floats are rejected; null becomes Null.
func unmarshalValue(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil

	case 'n':
		return Null{}, nil

	case '[', '{':
		return nil, fmt.Errorf("nested values are not allowed in segments: %s", string(data))

	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("floats not allowed in segments: %s", string(data))
		}
		return Int(i), nil
	}
}
