package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/gaq/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes the payload to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Payload  []ir.Segment // Full payload for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull payload:\n")
	for i, seg := range e.Payload {
		data, err := ir.MarshalCanonical(seg)
		if err != nil {
			fmt.Fprintf(&buf, "  [%d] %v\n", i+1, []ir.Value(seg))
			continue
		}
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, data)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion against one request result and
// returns the failure messages.
func EvaluateAssertions(rr RequestResult, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertPayloadContains:
			err = assertPayloadContains(rr.Payload, a)
		case AssertPayloadOrder:
			err = assertPayloadOrder(rr.Payload, a)
		case AssertPayloadCount:
			err = assertPayloadCount(rr.Payload, a)
		case AssertFlashEmpty:
			err = assertFlashEmpty(rr, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertPayloadContains checks for a segment with the token whose parameters
// start with the assertion args.
func assertPayloadContains(payload []ir.Segment, a Assertion) error {
	want, err := convertToSegment(a.Args)
	if err != nil {
		return fmt.Errorf("payload_contains args: %w", err)
	}

	for _, seg := range payload {
		tok, ok := seg.Token()
		if !ok || tok != a.Token {
			continue
		}
		if hasPrefix(seg.Params(), want) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertPayloadContains,
		Expected: fmt.Sprintf("segment %s with args %v", a.Token, a.Args),
		Actual:   "not found in payload",
		Payload:  payload,
	}
}

func hasPrefix(params []ir.Value, want ir.Segment) bool {
	if len(want) > len(params) {
		return false
	}
	for i, w := range want {
		if params[i] != w {
			return false
		}
	}
	return true
}

// assertPayloadOrder checks that the first occurrence of each token appears in
// the given order. Tokens need not be consecutive.
func assertPayloadOrder(payload []ir.Segment, a Assertion) error {
	positions := make(map[string]int)
	for i, seg := range payload {
		tok, _ := seg.Token()
		if positions[tok] == 0 {
			positions[tok] = i + 1 // 1-indexed for readability
		}
	}

	for _, tok := range a.Tokens {
		if positions[tok] == 0 {
			return &AssertionError{
				Type:     AssertPayloadOrder,
				Expected: fmt.Sprintf("all tokens present: %v", a.Tokens),
				Actual:   fmt.Sprintf("missing token: %s", tok),
				Payload:  payload,
			}
		}
	}

	for i := 1; i < len(a.Tokens); i++ {
		prev, curr := a.Tokens[i-1], a.Tokens[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertPayloadOrder,
				Expected: fmt.Sprintf("tokens in order: %v", a.Tokens),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Payload: payload,
			}
		}
	}
	return nil
}

// assertPayloadCount checks the token appears exactly Count times.
func assertPayloadCount(payload []ir.Segment, a Assertion) error {
	count := 0
	for _, seg := range payload {
		if tok, _ := seg.Token(); tok == a.Token {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertPayloadCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Token),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Payload:  payload,
		}
	}
	return nil
}

func assertFlashEmpty(rr RequestResult, _ Assertion) error {
	if rr.Flash.Empty() {
		return nil
	}
	return &AssertionError{
		Type:     AssertFlashEmpty,
		Expected: "nothing carried to the next request",
		Actual:   fmt.Sprintf("%d early, %d normal segments", len(rr.Flash.Early), len(rr.Flash.Normal)),
		Payload:  rr.Payload,
	}
}
