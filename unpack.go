package structpack

import (
	"math"
	"unicode/utf8"

	"github.com/wippyai/structpack/errors"
)

// Unpack decodes a buffer into one value per non-padding field, in field
// order. The buffer length must equal Size() exactly; any other length fails
// before a single field is read.
func (d *Descriptor) Unpack(buf []byte) ([]Value, error) {
	if len(buf) != d.size {
		return nil, errors.SizeMismatch(d.size, len(buf))
	}

	out := make([]Value, 0, len(d.fields))
	for i, f := range d.fields {
		src := buf[f.Offset : f.Offset+f.Length]

		switch f.Kind {
		case KindText:
			if !utf8.Valid(src) {
				return nil, errors.InvalidUTF8(i, src)
			}
			out = append(out, Text(string(src)))
		case KindChar:
			// the byte is a code point, so the result is always valid text
			out = append(out, Text(string(rune(src[0]))))
		case KindBool:
			out = append(out, Bool(src[0] != 0))
		case KindInt8:
			out = append(out, Int(int64(int8(src[0]))))
		case KindUint8:
			out = append(out, Int(int64(src[0])))
		case KindInt16:
			out = append(out, Int(int64(int16(d.order.Uint16(src)))))
		case KindUint16:
			out = append(out, Int(int64(d.order.Uint16(src))))
		case KindInt32:
			out = append(out, Int(int64(int32(d.order.Uint32(src)))))
		case KindUint32:
			out = append(out, Int(int64(d.order.Uint32(src))))
		case KindLong:
			if f.Length == 8 {
				out = append(out, Int(int64(d.order.Uint64(src))))
			} else {
				out = append(out, Int(int64(int32(d.order.Uint32(src)))))
			}
		case KindUlong:
			if f.Length == 8 {
				// values above MaxInt64 reinterpret as negative
				out = append(out, Int(int64(d.order.Uint64(src))))
			} else {
				out = append(out, Int(int64(d.order.Uint32(src))))
			}
		case KindInt64:
			out = append(out, Int(int64(d.order.Uint64(src))))
		case KindUint64:
			// values above MaxInt64 reinterpret as negative
			out = append(out, Int(int64(d.order.Uint64(src))))
		case KindFloat32:
			out = append(out, Float(float64(math.Float32frombits(d.order.Uint32(src)))))
		case KindFloat64:
			out = append(out, Float(math.Float64frombits(d.order.Uint64(src))))
		}
	}

	return out, nil
}
