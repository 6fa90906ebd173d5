package structpack

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/wippyai/structpack/errors"
)

// Length bounds for s and x tokens. A declared length of 0 means 1.
const (
	minFieldLen = 1
	maxFieldLen = 65535
)

// Config adjusts compilation. A nil *Config means defaults.
type Config struct {
	// LongWidth is the byte width of l and L fields: 4 or 8. Zero means 4.
	// The width is fixed into the descriptor at compile time; it is never
	// inferred from the host platform.
	LongWidth int
}

// Compile scans a format string into an immutable Descriptor using the
// default configuration.
func Compile(format string) (*Descriptor, error) {
	return CompileWithConfig(format, nil)
}

// MustCompile is like Compile but panics on error. Use it for package-level
// descriptors built from constant formats.
func MustCompile(format string) *Descriptor {
	d, err := Compile(format)
	if err != nil {
		panic("structpack: Compile(" + strconv.Quote(format) + "): " + err.Error())
	}
	return d
}

// CompileWithConfig scans a format string into an immutable Descriptor.
//
// The scan is a single forward pass. Decimal digits accumulate a pending
// length that the next token consumes; every non-digit token resets it.
// Byte-order directives may appear anywhere, but a descriptor has a single
// order: the last directive seen governs every numeric field.
func CompileWithConfig(format string, cfg *Config) (*Descriptor, error) {
	longWidth := 4
	if cfg != nil && cfg.LongWidth != 0 {
		if cfg.LongWidth != 4 && cfg.LongWidth != 8 {
			return nil, errors.InvalidInput(errors.PhaseCompile,
				fmt.Sprintf("long width must be 4 or 8, got %d", cfg.LongWidth))
		}
		longWidth = cfg.LongWidth
	}

	var (
		fields  []Field
		order   = NativeOrder
		offset  int
		pending int
	)

	for pos, tok := range format {
		if tok >= '0' && tok <= '9' {
			pending = pending*10 + int(tok-'0')
			if pending > maxFieldLen {
				pending = maxFieldLen + 1 // saturate
			}
			continue
		}

		switch tok {
		case '@', '=':
			order = NativeOrder
		case '<':
			order = binary.LittleEndian
		case '>':
			order = binary.BigEndian
		case '!':
			order = NetworkOrder
		case 's':
			n := clampLen(pending)
			fields = append(fields, Field{Kind: KindText, Length: n, Offset: offset})
			offset += n
		case 'x':
			// consumes offset space, emits no field
			offset += clampLen(pending)
		default:
			kind, width, ok := fieldToken(tok, longWidth)
			if !ok {
				return nil, errors.InvalidSequence(tok, pos)
			}
			fields = append(fields, Field{Kind: kind, Length: width, Offset: offset})
			offset += width
		}
		pending = 0
	}

	return &Descriptor{
		fields: fields,
		format: format,
		order:  order,
		size:   offset,
	}, nil
}

// fieldToken maps a fixed-width field token to its kind and byte width.
// Pending digit counts are ignored for these tokens.
func fieldToken(tok rune, longWidth int) (Kind, int, bool) {
	switch tok {
	case '?':
		return KindBool, 1, true
	case 'c':
		return KindChar, 1, true
	case 'b':
		return KindInt8, 1, true
	case 'B':
		return KindUint8, 1, true
	case 'h':
		return KindInt16, 2, true
	case 'H':
		return KindUint16, 2, true
	case 'i':
		return KindInt32, 4, true
	case 'I':
		return KindUint32, 4, true
	case 'l':
		return KindLong, longWidth, true
	case 'L':
		return KindUlong, longWidth, true
	case 'q':
		return KindInt64, 8, true
	case 'Q':
		return KindUint64, 8, true
	case 'f':
		return KindFloat32, 4, true
	case 'd':
		return KindFloat64, 8, true
	}
	return 0, 0, false
}

func clampLen(n int) int {
	if n < minFieldLen {
		return minFieldLen
	}
	if n > maxFieldLen {
		return maxFieldLen
	}
	return n
}
