package structpack

import "encoding/binary"

// Field is one compiled slot in a layout.
type Field struct {
	Kind   Kind
	Length int // byte length
	Offset int // byte offset from the start of the buffer
}

// Descriptor is a compiled format string: the ordered non-padding fields,
// the total buffer size including padding, and the byte order numeric fields
// are encoded with. A Descriptor is immutable after Compile and safe to
// share across goroutines without locking.
type Descriptor struct {
	fields []Field
	format string
	order  binary.ByteOrder
	size   int
}

// Fields returns the non-padding fields in declaration order. The slice is
// a copy, so callers cannot disturb the descriptor through it.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// NumFields returns the number of non-padding fields, which is also the
// number of values Pack consumes and Unpack produces.
func (d *Descriptor) NumFields() int {
	return len(d.fields)
}

// Size returns the exact buffer size in bytes: what Pack produces and what
// Unpack requires.
func (d *Descriptor) Size() int {
	return d.size
}

// Order returns the byte order numeric fields are encoded with.
func (d *Descriptor) Order() binary.ByteOrder {
	return d.order
}

// Format returns the format string the descriptor was compiled from.
func (d *Descriptor) Format() string {
	return d.format
}
