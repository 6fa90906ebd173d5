package structpack

// Kind identifies the wire type of a compiled field.
type Kind uint8

const (
	KindText Kind = iota // variable-length text, 's'
	KindPad              // offset-consuming padding, 'x', never materialized
	KindBool             // 1 byte, '?'
	KindChar             // 1 byte, 'c'
	KindInt8             // 'b'
	KindUint8            // 'B'
	KindInt16            // 'h'
	KindUint16           // 'H'
	KindInt32            // 'i'
	KindUint32           // 'I'
	KindLong             // 'l', width fixed by Config at compile time
	KindUlong            // 'L'
	KindInt64            // 'q'
	KindUint64           // 'Q'
	KindFloat32          // 'f'
	KindFloat64          // 'd'
)

var kindNames = [...]string{
	KindText:    "text",
	KindPad:     "pad",
	KindBool:    "bool",
	KindChar:    "char",
	KindInt8:    "int8",
	KindUint8:   "uint8",
	KindInt16:   "int16",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindLong:    "long",
	KindUlong:   "ulong",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether the kind packs a fixed-width integer or float.
// Numeric fields are the strict ones: pack fails when a value cannot be
// coerced to them.
func (k Kind) IsNumeric() bool {
	return k >= KindInt8 && k <= KindFloat64
}
