package structpack

import (
	"math"
	"strconv"
	"strings"
)

// Coercion rules for numeric fields, applied during pack. These are
// deliberately relaxed: floats truncate toward zero, bools become 0/1, and
// numeric text parses. Out-of-range results and non-numeric text fail, which
// aborts the pack call.

// Exactly representable float64 bounds of the 64-bit integer ranges. The
// upper bounds are exclusive because float64(MaxInt64) and float64(MaxUint64)
// round up past the true maxima.
const (
	floatMinInt64  = -9223372036854775808.0 // -2^63
	floatMaxInt64  = 9223372036854775808.0  // 2^63
	floatMaxUint64 = 18446744073709551616.0 // 2^64
)

// coerceInt converts a value to a signed integer within [min, max].
func coerceInt(v Value, min, max int64) (int64, bool) {
	switch v.kind {
	case ValueInt:
		if v.i < min || v.i > max {
			return 0, false
		}
		return v.i, true
	case ValueFloat:
		return floatToInt(v.f, min, max)
	case ValueBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case ValueText:
		s := strings.TrimSpace(v.s)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if n < min || n > max {
				return 0, false
			}
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f, min, max)
		}
	}
	return 0, false
}

// coerceUint converts a value to an unsigned integer within [0, max].
func coerceUint(v Value, max uint64) (uint64, bool) {
	switch v.kind {
	case ValueInt:
		if v.i < 0 || uint64(v.i) > max {
			return 0, false
		}
		return uint64(v.i), true
	case ValueFloat:
		return floatToUint(v.f, max)
	case ValueBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case ValueText:
		s := strings.TrimSpace(v.s)
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			if n > max {
				return 0, false
			}
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToUint(f, max)
		}
	}
	return 0, false
}

// coerceFloat converts a value to a float64. Float32 fields narrow the
// result with an ordinary conversion afterwards.
func coerceFloat(v Value) (float64, bool) {
	switch v.kind {
	case ValueFloat:
		return v.f, true
	case ValueInt:
		return float64(v.i), true
	case ValueBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case ValueText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// coerceBool interprets a value as a boolean: bools directly, numbers as
// nonzero, and text via strconv.ParseBool.
func coerceBool(v Value) (bool, bool) {
	switch v.kind {
	case ValueBool:
		return v.b, true
	case ValueInt:
		return v.i != 0, true
	case ValueFloat:
		return v.f != 0, true
	case ValueText:
		b, err := strconv.ParseBool(strings.TrimSpace(v.s))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

func floatToInt(f float64, min, max int64) (int64, bool) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < floatMinInt64 || t >= floatMaxInt64 {
		return 0, false
	}
	n := int64(t)
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

func floatToUint(f float64, max uint64) (uint64, bool) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < 0 || t >= floatMaxUint64 {
		return 0, false
	}
	n := uint64(t)
	if n > max {
		return 0, false
	}
	return n, true
}
