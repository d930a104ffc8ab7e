// Package value holds the value objects of the Telegram wire format. Every
// kind is built through a fallible FromWire constructor and turned back into
// its wire representation with Wire.
package value

import (
	"encoding/json"
	"math"
	"strconv"

	"tgwire/pkg/wireerr"
)

// String reads a JSON string.
func String(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", mismatch("string", raw)
	}

	return s, nil
}

// Bool reads a JSON boolean.
func Bool(raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, mismatch("boolean", raw)
	}

	return b, nil
}

// Int reads a JSON integer. Numbers decoded with UseNumber, native Go
// integers, and integral float64 values are accepted.
func Int(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, wireerr.Newf(wireerr.TypeMismatch, "expected integer, got number %s", v)
		}
		return n, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v >= 1<<63 || v < math.MinInt64 {
			return 0, wireerr.Newf(wireerr.TypeMismatch, "expected integer, got number %v", v)
		}
		return int64(v), nil
	default:
		return 0, mismatch("integer", raw)
	}
}

// Float reads a JSON number.
func Float(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, wireerr.Newf(wireerr.TypeMismatch, "expected number, got %s", v)
		}
		return f, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, mismatch("number", raw)
	}
}

// KindOf names the JSON kind of a generic tree value.
func KindOf(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func mismatch(want string, raw any) error {
	return wireerr.Newf(wireerr.TypeMismatch, "expected %s, got %s", want, KindOf(raw))
}

func invalid(format string, args ...any) error {
	return wireerr.Newf(wireerr.InvalidValue, format, args...)
}
