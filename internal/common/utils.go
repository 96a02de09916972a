package common

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number converts a number-like value decoded from a feed payload into a
// finite float64. ok is false for missing, non-numeric, empty or
// non-finite input.
func Number(v any) (f float64, ok bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOr is Number with a fallback for invalid input.
func NumberOr(v any, def float64) float64 {
	if f, ok := Number(v); ok {
		return f
	}
	return def
}

// Bool reports a boolean-like payload value. Strings "true"/"false" and
// numbers are accepted; anything else is not ok.
func Bool(v any) (b bool, ok bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(x))
		return parsed, err == nil
	default:
		if f, isNum := Number(v); isNum {
			return f != 0, true
		}
		return false, false
	}
}
