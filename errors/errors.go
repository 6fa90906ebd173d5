package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation the error occurred in
type Phase string

const (
	PhaseCompile Phase = "compile" // format string compilation
	PhasePack    Phase = "pack"    // values to bytes
	PhaseUnpack  Phase = "unpack"  // bytes to values
	PhaseHost    Phase = "host"    // wasm host module operations
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidSequence Kind = "invalid_sequence" // unrecognized format token
	KindWriteConversion Kind = "write_conversion" // value not coercible to a numeric field
	KindSizeMismatch    Kind = "size_mismatch"    // buffer length differs from descriptor size
	KindInvalidUTF8     Kind = "invalid_utf8"     // text field bytes are not valid UTF-8
	KindOutOfBounds     Kind = "out_of_bounds"    // guest memory range outside linear memory
	KindNotFound        Kind = "not_found"        // unknown descriptor handle
	KindInvalidInput    Kind = "invalid_input"    // malformed caller input
	KindRegistration    Kind = "registration"     // host module instantiation failure
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Detail     string
	FieldIndex int // index of the field the error belongs to, -1 when not field-scoped
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.FieldIndex >= 0 {
		fmt.Fprintf(&b, " at field %d", e.FieldIndex)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when their
// Phase and Kind agree; detail, value, and field index are ignored.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:      phase,
			Kind:       kind,
			FieldIndex: -1,
		},
	}
}

// Field sets the index of the field the error belongs to
func (b *Builder) Field(index int) *Builder {
	b.err.FieldIndex = index
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidSequence reports an unrecognized format token. pos is the byte
// position of the token within the format string.
func InvalidSequence(token rune, pos int) *Error {
	return &Error{
		Phase:      PhaseCompile,
		Kind:       KindInvalidSequence,
		Detail:     fmt.Sprintf("unrecognized token %q at position %d", token, pos),
		Value:      token,
		FieldIndex: -1,
	}
}

// WriteConversion reports a pack-time value that cannot be coerced to its
// target numeric kind.
func WriteConversion(fieldIndex int, target string, value any) *Error {
	return &Error{
		Phase:      PhasePack,
		Kind:       KindWriteConversion,
		Detail:     fmt.Sprintf("cannot convert %v to %s", value, target),
		Value:      value,
		FieldIndex: fieldIndex,
	}
}

// SizeMismatch reports an unpack buffer whose length differs from the
// descriptor's total size.
func SizeMismatch(want, got int) *Error {
	return &Error{
		Phase:      PhaseUnpack,
		Kind:       KindSizeMismatch,
		Detail:     fmt.Sprintf("buffer is %d bytes, descriptor needs exactly %d", got, want),
		Value:      got,
		FieldIndex: -1,
	}
}

// InvalidUTF8 reports text field bytes that do not decode as UTF-8
func InvalidUTF8(fieldIndex int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:      PhaseUnpack,
		Kind:       KindInvalidUTF8,
		Detail:     fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
		FieldIndex: fieldIndex,
	}
}

// OutOfBounds reports a guest memory access outside linear memory
func OutOfBounds(offset, length uint32) *Error {
	return &Error{
		Phase:      PhaseHost,
		Kind:       KindOutOfBounds,
		Detail:     fmt.Sprintf("memory range [%d, %d) out of bounds", offset, uint64(offset)+uint64(length)),
		FieldIndex: -1,
	}
}

// NotFound reports an unknown descriptor handle
func NotFound(handle uint32) *Error {
	return &Error{
		Phase:      PhaseHost,
		Kind:       KindNotFound,
		Detail:     fmt.Sprintf("descriptor handle %d not found", handle),
		Value:      handle,
		FieldIndex: -1,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindInvalidInput,
		Detail:     detail,
		FieldIndex: -1,
	}
}

// Registration reports a host module instantiation failure
func Registration(module string, cause error) *Error {
	return &Error{
		Phase:      PhaseHost,
		Kind:       KindRegistration,
		Detail:     fmt.Sprintf("instantiate host module %q", module),
		Cause:      cause,
		FieldIndex: -1,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       kind,
		Detail:     detail,
		Cause:      cause,
		FieldIndex: -1,
	}
}
