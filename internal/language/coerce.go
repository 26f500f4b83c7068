package language

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/roach88/gaq/internal/ir"
)

// CoerceFunc converts a raw argument to the value kind named by tag.
type CoerceFunc func(tag TypeTag, raw any) (ir.Value, error)

// Coerce is the default CoerceFunc.
//
//   - String: any input becomes its string representation; nil becomes "".
//   - Int: integer-representable input becomes an Int, anything else is INVALID_ARGUMENT.
//   - Boolean: truthiness of the input itself; only nil, false and Null are false.
//   - Number: always NOT_IMPLEMENTED.
//   - any other tag: UNKNOWN_TYPE.
func Coerce(tag TypeTag, raw any) (ir.Value, error) {
	switch tag {
	case TypeString:
		return ir.String(coerceString(raw)), nil
	case TypeInt:
		n, err := coerceInt(raw)
		if err != nil {
			return nil, newInvalidArgumentError(tag, raw, err.Error())
		}
		return ir.Int(n), nil
	case TypeBoolean:
		return ir.Bool(truthy(raw)), nil
	case TypeNumber:
		return nil, newNotImplementedError(tag)
	default:
		return nil, newUnknownTypeError(tag)
	}
}

func coerceString(raw any) string {
	switch v := raw.(type) {
	case nil, ir.Null:
		return ""
	case string:
		return v
	case ir.String:
		return string(v)
	case ir.Int:
		return strconv.FormatInt(int64(v), 10)
	case ir.Bool:
		return strconv.FormatBool(bool(v))
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(raw)
	}
}

func coerceInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil, ir.Null:
		return 0, fmt.Errorf("no value")
	case ir.Int:
		return int64(v), nil
	case ir.String:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	case json.Number:
		return parseInt(v.String())
	case bool, ir.Bool:
		return 0, fmt.Errorf("booleans are not integers")
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("out of int64 range")
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, fmt.Errorf("not an integral number")
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("out of int64 range")
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("unsupported type")
}

// parseInt accepts surrounding whitespace, an optional sign, 0x/0o/0b
// prefixes and underscore separators.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	return n, nil
}

// truthy reports the truthiness of raw: absence and false are falsy,
// every present value (including 0 and "") is truthy.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil, ir.Null:
		return false
	case bool:
		return v
	case ir.Bool:
		return bool(v)
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}
