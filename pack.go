package structpack

import (
	"math"

	"github.com/wippyai/structpack/errors"
)

// Pack encodes values into a new buffer of exactly Size() bytes.
//
// Fields pair with values positionally: extra values are ignored, and when
// fewer values than fields are given the trailing fields stay zeroed. Text,
// char, and bool fields are permissive and leave their bytes zeroed when a
// value does not convert. Numeric fields are strict: a value that cannot be
// coerced fails the whole call and no buffer is returned.
func (d *Descriptor) Pack(values []Value) ([]byte, error) {
	buf := make([]byte, d.size)

	n := len(values)
	if n > len(d.fields) {
		n = len(d.fields)
	}

	for i := 0; i < n; i++ {
		f := d.fields[i]
		dst := buf[f.Offset : f.Offset+f.Length]

		switch f.Kind {
		case KindText:
			// left-aligned, silently truncated; the zeroed buffer pads the tail
			copy(dst, values[i].String())
		case KindChar:
			if s := values[i].String(); len(s) > 0 {
				dst[0] = s[0]
			}
		case KindBool:
			if b, ok := coerceBool(values[i]); ok && b {
				dst[0] = 1
			}
		default:
			if err := d.packNumeric(dst, i, f, values[i]); err != nil {
				return nil, err
			}
		}
	}

	return buf, nil
}

func (d *Descriptor) packNumeric(dst []byte, index int, f Field, v Value) error {
	switch f.Kind {
	case KindInt8:
		n, ok := coerceInt(v, math.MinInt8, math.MaxInt8)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		dst[0] = byte(n)
	case KindUint8:
		n, ok := coerceUint(v, math.MaxUint8)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		dst[0] = byte(n)
	case KindInt16:
		n, ok := coerceInt(v, math.MinInt16, math.MaxInt16)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint16(dst, uint16(n))
	case KindUint16:
		n, ok := coerceUint(v, math.MaxUint16)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint16(dst, uint16(n))
	case KindInt32:
		n, ok := coerceInt(v, math.MinInt32, math.MaxInt32)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint32(dst, uint32(n))
	case KindUint32:
		n, ok := coerceUint(v, math.MaxUint32)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint32(dst, uint32(n))
	case KindLong:
		if f.Length == 8 {
			n, ok := coerceInt(v, math.MinInt64, math.MaxInt64)
			if !ok {
				return errors.WriteConversion(index, f.Kind.String(), v)
			}
			d.order.PutUint64(dst, uint64(n))
		} else {
			n, ok := coerceInt(v, math.MinInt32, math.MaxInt32)
			if !ok {
				return errors.WriteConversion(index, f.Kind.String(), v)
			}
			d.order.PutUint32(dst, uint32(n))
		}
	case KindUlong:
		if f.Length == 8 {
			n, ok := coerceUint(v, math.MaxUint64)
			if !ok {
				return errors.WriteConversion(index, f.Kind.String(), v)
			}
			d.order.PutUint64(dst, n)
		} else {
			n, ok := coerceUint(v, math.MaxUint32)
			if !ok {
				return errors.WriteConversion(index, f.Kind.String(), v)
			}
			d.order.PutUint32(dst, uint32(n))
		}
	case KindInt64:
		n, ok := coerceInt(v, math.MinInt64, math.MaxInt64)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint64(dst, uint64(n))
	case KindUint64:
		n, ok := coerceUint(v, math.MaxUint64)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint64(dst, n)
	case KindFloat32:
		fv, ok := coerceFloat(v)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint32(dst, math.Float32bits(float32(fv)))
	case KindFloat64:
		fv, ok := coerceFloat(v)
		if !ok {
			return errors.WriteConversion(index, f.Kind.String(), v)
		}
		d.order.PutUint64(dst, math.Float64bits(fv))
	}
	return nil
}
