package structpack

import (
	"fmt"
	"strconv"
)

// ValueKind identifies which variant a Value holds.
type ValueKind uint8

const (
	ValueNil ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueText
)

var valueKindNames = [...]string{
	ValueNil:   "nil",
	ValueBool:  "bool",
	ValueInt:   "int",
	ValueFloat: "float",
	ValueText:  "text",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// Value is the dynamically typed unit the codec consumes and produces:
// exactly one of nil, bool, int64, float64, or text. The zero Value is nil.
// Values are small and comparable; pass and copy them freely.
type Value struct {
	s    string
	i    int64
	f    float64
	b    bool
	kind ValueKind
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: ValueBool, b: v} }

// Int returns an integer Value. int64 is the widest width the codec carries;
// narrower fields range-check during pack.
func Int(v int64) Value { return Value{kind: ValueInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: ValueFloat, f: v} }

// Text returns a text Value.
func Text(v string) Value { return Value{kind: ValueText, s: v} }

// Kind returns the variant the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNil reports whether the value is the nil variant.
func (v Value) IsNil() bool { return v.kind == ValueNil }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, error) {
	if v.kind != ValueBool {
		return false, fmt.Errorf("structpack: expected bool value, got %s", v.kind)
	}
	return v.b, nil
}

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, error) {
	if v.kind != ValueInt {
		return 0, fmt.Errorf("structpack: expected int value, got %s", v.kind)
	}
	return v.i, nil
}

// AsFloat returns the floating-point payload.
func (v Value) AsFloat() (float64, error) {
	if v.kind != ValueFloat {
		return 0, fmt.Errorf("structpack: expected float value, got %s", v.kind)
	}
	return v.f, nil
}

// AsText returns the text payload.
func (v Value) AsText() (string, error) {
	if v.kind != ValueText {
		return "", fmt.Errorf("structpack: expected text value, got %s", v.kind)
	}
	return v.s, nil
}

// String returns the textual representation of the value: the payload for
// text, "true"/"false" for bools, decimal for ints, shortest form for
// floats, and "" for nil. Text and char fields pack this representation.
func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueText:
		return v.s
	}
	return ""
}
