package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSegments(t *testing.T) {
	segs := []Segment{
		NewSegment("foo._setAccount", String("UA-1")),
		NewSegment("_trackEvent", String("a&b"), String("<x>"), String("c"), Int(1), Bool(false)),
	}

	data, err := MarshalCanonical(segs)
	require.NoError(t, err)
	assert.Equal(t, `[["foo._setAccount","UA-1"],["_trackEvent","a&b","<x>","c",1,false]]`, string(data))
}

func TestMarshalCanonicalObjectKeyOrder(t *testing.T) {
	// 'A' = 65, 'a' = 97
	obj := map[string]any{
		"b":  Int(1),
		"a":  Int(2),
		"A":  Int(3),
		"aa": Int(4),
	}

	data, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"A":3,"a":2,"aa":4,"b":1}`, string(data))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// "e" + combining acute accent normalizes to U+00E9
	data, err := MarshalCanonical(String("cafe\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "\"caf\u00e9\"", string(data))
}

func TestMarshalExactKeepsDecomposedStrings(t *testing.T) {
	segs := []Segment{NewSegment("_trackEvent", String("cafe\u0301"), String("a<b"))}

	data, err := MarshalExact(segs)
	require.NoError(t, err)
	assert.Equal(t, "[[\"_trackEvent\",\"cafe\u0301\",\"a<b\"]]", string(data))

	back, err := UnmarshalSegments(data)
	require.NoError(t, err)
	assert.Equal(t, segs, back)
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	data, err := MarshalCanonical(String("a\u2028b\u2029c"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(data))
}

func TestMarshalCanonicalEscapedBackslashStays(t *testing.T) {
	// A literal backslash followed by the text u2028 must survive.
	data, err := MarshalCanonical(String(`\u2028`))
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(data))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical([]any{1.5})
	assert.Error(t, err)

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestMarshalCanonicalNull(t *testing.T) {
	data, err := MarshalCanonical(Segment{String("_x"), Null{}})
	require.NoError(t, err)
	assert.Equal(t, `["_x",null]`, string(data))
}

func TestCompareKeysRFC8785(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"aa", "a", 1},
		{"A", "a", -1},
		{"", "", 0},
		{"", "a", -1},
		// U+FF61 sorts before U+1F600 in UTF-8 but after it in UTF-16
		{"\uff61", "\U0001F600", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			result := compareKeysRFC8785(tt.a, tt.b)
			switch {
			case tt.expected < 0:
				assert.Less(t, result, 0)
			case tt.expected > 0:
				assert.Greater(t, result, 0)
			default:
				assert.Equal(t, 0, result)
			}
		})
	}
}
