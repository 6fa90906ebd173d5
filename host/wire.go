package host

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/structpack"
	"github.com/wippyai/structpack/errors"
)

// Value wire tags. The encoding is little-endian throughout, independent of
// the byte order any descriptor uses for its fields.
const (
	tagNil   = 0
	tagBool  = 1
	tagInt   = 2
	tagFloat = 3
	tagText  = 4
)

// EncodeValues encodes a value sequence as a u32 count followed by one
// tagged entry per value.
func EncodeValues(values []structpack.Value) []byte {
	buf := make([]byte, 4, 4+16*len(values))
	binary.LittleEndian.PutUint32(buf, uint32(len(values)))
	for _, v := range values {
		buf = appendValue(buf, v)
	}
	return buf
}

func appendValue(buf []byte, v structpack.Value) []byte {
	switch v.Kind() {
	case structpack.ValueBool:
		b, _ := v.AsBool()
		if b {
			return append(buf, tagBool, 1)
		}
		return append(buf, tagBool, 0)
	case structpack.ValueInt:
		i, _ := v.AsInt()
		buf = append(buf, tagInt)
		return binary.LittleEndian.AppendUint64(buf, uint64(i))
	case structpack.ValueFloat:
		f, _ := v.AsFloat()
		buf = append(buf, tagFloat)
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	case structpack.ValueText:
		s, _ := v.AsText()
		buf = append(buf, tagText)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
		return append(buf, s...)
	}
	return append(buf, tagNil)
}

// DecodeValues decodes a value sequence produced by EncodeValues or a
// guest-side equivalent. Truncated data, unknown tags, and trailing bytes
// all fail.
func DecodeValues(data []byte) ([]structpack.Value, error) {
	r := wireReader{data: data}

	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	// Each entry carries at least a tag byte, so the count can never exceed
	// the remaining payload.
	if uint64(count) > uint64(len(data)) {
		return nil, r.invalid("value count %d exceeds payload", count)
	}

	values := make([]structpack.Value, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.value()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if r.pos != len(r.data) {
		return nil, r.invalid("%d trailing bytes after %d values", len(r.data)-r.pos, count)
	}
	return values, nil
}

type wireReader struct {
	data []byte
	pos  int
}

func (r *wireReader) invalid(msg string, args ...any) error {
	return errors.New(errors.PhaseHost, errors.KindInvalidInput).
		Detail("at byte %d: "+msg, append([]any{r.pos}, args...)...).
		Build()
}

func (r *wireReader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, r.invalid("truncated value data")
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *wireReader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *wireReader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *wireReader) value() (structpack.Value, error) {
	tb, err := r.take(1)
	if err != nil {
		return structpack.Value{}, err
	}

	switch tb[0] {
	case tagNil:
		return structpack.Value{}, nil
	case tagBool:
		b, err := r.take(1)
		if err != nil {
			return structpack.Value{}, err
		}
		return structpack.Bool(b[0] != 0), nil
	case tagInt:
		n, err := r.u64()
		if err != nil {
			return structpack.Value{}, err
		}
		return structpack.Int(int64(n)), nil
	case tagFloat:
		n, err := r.u64()
		if err != nil {
			return structpack.Value{}, err
		}
		return structpack.Float(math.Float64frombits(n)), nil
	case tagText:
		n, err := r.u32()
		if err != nil {
			return structpack.Value{}, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return structpack.Value{}, err
		}
		return structpack.Text(string(b)), nil
	}
	return structpack.Value{}, r.invalid("unknown value tag %d", tb[0])
}
