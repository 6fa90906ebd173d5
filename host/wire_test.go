package host_test

import (
	"encoding/binary"
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/structpack"
	"github.com/wippyai/structpack/errors"
	"github.com/wippyai/structpack/host"
)

func TestEncodeValues_RoundTrip(t *testing.T) {
	values := []structpack.Value{
		{},
		structpack.Bool(true),
		structpack.Bool(false),
		structpack.Int(-42),
		structpack.Int(math.MaxInt64),
		structpack.Float(1.5),
		structpack.Text("héllo"),
		structpack.Text(""),
	}

	data := host.EncodeValues(values)
	got, err := host.DecodeValues(data)
	if err != nil {
		t.Fatalf("DecodeValues() error = %v", err)
	}

	if len(got) != len(values) {
		t.Fatalf("decoded %d values, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], values[i])
		}
	}
}

func TestEncodeValues_Empty(t *testing.T) {
	data := host.EncodeValues(nil)
	if len(data) != 4 {
		t.Fatalf("encoded empty sequence is %d bytes, want 4", len(data))
	}

	got, err := host.DecodeValues(data)
	if err != nil {
		t.Fatalf("DecodeValues() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("decoded %d values, want 0", len(got))
	}
}

func TestDecodeValues_Errors(t *testing.T) {
	// A valid one-value sequence to corrupt.
	valid := host.EncodeValues([]structpack.Value{structpack.Int(7)})

	tests := []struct {
		name string
		data []byte
	}{
		{"nil data", nil},
		{"truncated count", []byte{1, 0}},
		{"count exceeds payload", []byte{0xff, 0xff, 0xff, 0xff}},
		{"truncated int payload", valid[:len(valid)-2]},
		{"unknown tag", []byte{1, 0, 0, 0, 9}},
		{"trailing bytes", append(append([]byte{}, valid...), 0)},
		{"text length past end", []byte{1, 0, 0, 0, 4, 10, 0, 0, 0, 'h', 'i'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := host.DecodeValues(tt.data)
			if err == nil {
				t.Fatalf("DecodeValues() = %v, want error", got)
			}

			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Kind != errors.KindInvalidInput {
				t.Errorf("Kind = %q, want %q", e.Kind, errors.KindInvalidInput)
			}
			if e.Phase != errors.PhaseHost {
				t.Errorf("Phase = %q, want %q", e.Phase, errors.PhaseHost)
			}
		})
	}
}

func TestEncodeValues_Layout(t *testing.T) {
	data := host.EncodeValues([]structpack.Value{structpack.Text("hi")})

	if count := binary.LittleEndian.Uint32(data); count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if data[4] != 4 {
		t.Fatalf("tag = %d, want 4", data[4])
	}
	if length := binary.LittleEndian.Uint32(data[5:]); length != 2 {
		t.Fatalf("text length = %d, want 2", length)
	}
	if string(data[9:]) != "hi" {
		t.Fatalf("payload = %q, want %q", data[9:], "hi")
	}
}
