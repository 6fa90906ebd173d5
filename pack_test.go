package structpack_test

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/structpack"
	"github.com/wippyai/structpack/errors"
)

func TestPack_Endianness(t *testing.T) {
	tests := []struct {
		name   string
		format string
		values []structpack.Value
		want   []byte
	}{
		{
			name:   "big endian int32",
			format: ">i",
			values: []structpack.Value{structpack.Int(1)},
			want:   []byte{0x00, 0x00, 0x00, 0x01},
		},
		{
			name:   "little endian int32",
			format: "<i",
			values: []structpack.Value{structpack.Int(1)},
			want:   []byte{0x01, 0x00, 0x00, 0x00},
		},
		{
			name:   "network order int16",
			format: "!h",
			values: []structpack.Value{structpack.Int(0x0102)},
			want:   []byte{0x01, 0x02},
		},
		{
			name:   "last directive governs every field",
			format: "<h>h",
			values: []structpack.Value{structpack.Int(0x0102), structpack.Int(0x0304)},
			want:   []byte{0x01, 0x02, 0x03, 0x04},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := structpack.MustCompile(tt.format)
			got, err := d.Pack(tt.values)
			if err != nil {
				t.Fatalf("Pack error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pack = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestPack_Text(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  structpack.Value
		want   []byte
	}{
		{
			name:   "truncated to field length",
			format: "3s",
			value:  structpack.Text("hello"),
			want:   []byte("hel"),
		},
		{
			name:   "short text zero padded",
			format: "3s",
			value:  structpack.Text("h"),
			want:   []byte{'h', 0x00, 0x00},
		},
		{
			name:   "exact fit",
			format: "3s",
			value:  structpack.Text("abc"),
			want:   []byte("abc"),
		},
		{
			name:   "number packs its decimal form",
			format: "4s",
			value:  structpack.Int(-12),
			want:   []byte{'-', '1', '2', 0x00},
		},
		{
			name:   "bool packs its name",
			format: "5s",
			value:  structpack.Bool(true),
			want:   []byte("true\x00"),
		},
		{
			name:   "nil leaves the field zeroed",
			format: "3s",
			value:  structpack.Value{},
			want:   []byte{0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := structpack.MustCompile(tt.format)
			got, err := d.Pack([]structpack.Value{tt.value})
			if err != nil {
				t.Fatalf("Pack error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pack = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPack_PaddingStaysZero(t *testing.T) {
	d := structpack.MustCompile("<2xi")
	got, err := d.Pack([]structpack.Value{structpack.Int(1)})
	if err != nil {
		t.Fatalf("Pack error: %v", err)
	}
	want := []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Pack = % x, want % x", got, want)
	}
}

func TestPack_ValuePairing(t *testing.T) {
	t.Run("missing values leave trailing fields zero", func(t *testing.T) {
		d := structpack.MustCompile("<ii")
		got, err := d.Pack([]structpack.Value{structpack.Int(5)})
		if err != nil {
			t.Fatalf("Pack error: %v", err)
		}
		want := []byte{0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		if !bytes.Equal(got, want) {
			t.Errorf("Pack = % x, want % x", got, want)
		}
	})

	t.Run("no values at all", func(t *testing.T) {
		d := structpack.MustCompile("<ii")
		got, err := d.Pack(nil)
		if err != nil {
			t.Fatalf("Pack error: %v", err)
		}
		if !bytes.Equal(got, make([]byte, 8)) {
			t.Errorf("Pack = % x, want all zero", got)
		}
	})

	t.Run("extra values ignored", func(t *testing.T) {
		d := structpack.MustCompile("<i")
		got, err := d.Pack([]structpack.Value{structpack.Int(5), structpack.Text("ignored")})
		if err != nil {
			t.Fatalf("Pack error: %v", err)
		}
		want := []byte{0x05, 0x00, 0x00, 0x00}
		if !bytes.Equal(got, want) {
			t.Errorf("Pack = % x, want % x", got, want)
		}
	})
}

func TestPack_PermissiveKinds(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  structpack.Value
		want   []byte
	}{
		{
			name:   "bool from true",
			format: "?",
			value:  structpack.Bool(true),
			want:   []byte{0x01},
		},
		{
			name:   "bool from nonzero int",
			format: "?",
			value:  structpack.Int(2),
			want:   []byte{0x01},
		},
		{
			name:   "bool from text true",
			format: "?",
			value:  structpack.Text("true"),
			want:   []byte{0x01},
		},
		{
			name:   "uncoercible bool stays zero",
			format: "?",
			value:  structpack.Text("maybe"),
			want:   []byte{0x00},
		},
		{
			name:   "nil bool stays zero",
			format: "?",
			value:  structpack.Value{},
			want:   []byte{0x00},
		},
		{
			name:   "char takes first byte",
			format: "c",
			value:  structpack.Text("AB"),
			want:   []byte{'A'},
		},
		{
			name:   "char from number takes first digit byte",
			format: "c",
			value:  structpack.Int(65),
			want:   []byte{'6'},
		},
		{
			name:   "empty char stays zero",
			format: "c",
			value:  structpack.Text(""),
			want:   []byte{0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := structpack.MustCompile(tt.format)
			got, err := d.Pack([]structpack.Value{tt.value})
			if err != nil {
				t.Fatalf("Pack error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pack = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestPack_NumericCoercion(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  structpack.Value
		want   []byte
	}{
		{
			name:   "float truncates toward zero",
			format: "<i",
			value:  structpack.Float(3.9),
			want:   []byte{0x03, 0x00, 0x00, 0x00},
		},
		{
			name:   "negative float truncates toward zero",
			format: "<h",
			value:  structpack.Float(-3.9),
			want:   []byte{0xfd, 0xff},
		},
		{
			name:   "bool becomes one",
			format: "<i",
			value:  structpack.Bool(true),
			want:   []byte{0x01, 0x00, 0x00, 0x00},
		},
		{
			name:   "numeric text parses",
			format: "<i",
			value:  structpack.Text("42"),
			want:   []byte{0x2a, 0x00, 0x00, 0x00},
		},
		{
			name:   "fractional text truncates",
			format: "<h",
			value:  structpack.Text("3.5"),
			want:   []byte{0x03, 0x00},
		},
		{
			name:   "int into float64",
			format: "<d",
			value:  structpack.Int(2),
			want:   []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40},
		},
		{
			name:   "float32 bits",
			format: ">f",
			value:  structpack.Float(1.5),
			want:   []byte{0x3f, 0xc0, 0x00, 0x00},
		},
		{
			name:   "signed min int8",
			format: "b",
			value:  structpack.Int(-128),
			want:   []byte{0x80},
		},
		{
			name:   "uint8 max",
			format: "B",
			value:  structpack.Int(255),
			want:   []byte{0xff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := structpack.MustCompile(tt.format)
			got, err := d.Pack([]structpack.Value{tt.value})
			if err != nil {
				t.Fatalf("Pack error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pack = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestPack_WriteConversionFailure(t *testing.T) {
	tests := []struct {
		name   string
		format string
		values []structpack.Value
	}{
		{
			name:   "non numeric text into int32",
			format: "i",
			values: []structpack.Value{structpack.Text("abc")},
		},
		{
			name:   "nil into int32",
			format: "i",
			values: []structpack.Value{{}},
		},
		{
			name:   "out of range int8",
			format: "b",
			values: []structpack.Value{structpack.Int(300)},
		},
		{
			name:   "negative into unsigned",
			format: "I",
			values: []structpack.Value{structpack.Int(-1)},
		},
		{
			name:   "NaN into int64",
			format: "q",
			values: []structpack.Value{structpack.Float(math.NaN())},
		},
		{
			name:   "non numeric text into float",
			format: "d",
			values: []structpack.Value{structpack.Text("abc")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := structpack.MustCompile(tt.format)
			buf, err := d.Pack(tt.values)
			if err == nil {
				t.Fatal("Pack succeeded, want write conversion failure")
			}
			if buf != nil {
				t.Error("Pack returned a partial buffer alongside the error")
			}
			if !stderrors.Is(err, errors.WriteConversion(0, "", nil)) {
				t.Errorf("error = %v, want write_conversion in pack phase", err)
			}
		})
	}
}

func TestPack_FailureAbortsWholeCall(t *testing.T) {
	// the second field fails, so the first field's successful write must not
	// leak out as a partial buffer
	d := structpack.MustCompile("<ib")
	buf, err := d.Pack([]structpack.Value{structpack.Int(7), structpack.Text("abc")})
	if err == nil {
		t.Fatal("Pack succeeded, want error")
	}
	if buf != nil {
		t.Errorf("Pack = % x, want nil buffer on failure", buf)
	}

	var serr *errors.Error
	if !stderrors.As(err, &serr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if serr.FieldIndex != 1 {
		t.Errorf("FieldIndex = %d, want 1", serr.FieldIndex)
	}
}

func TestPack_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format string
		values []structpack.Value
	}{
		{
			name:   "signed and unsigned widths little endian",
			format: "<bBhHiIlLqQ",
			values: []structpack.Value{
				structpack.Int(-8), structpack.Int(200),
				structpack.Int(-3000), structpack.Int(60000),
				structpack.Int(-70000), structpack.Int(4000000000),
				structpack.Int(-70000), structpack.Int(4000000000),
				structpack.Int(-5000000000), structpack.Int(9000000000),
			},
		},
		{
			name:   "floats big endian",
			format: ">fd",
			values: []structpack.Value{structpack.Float(1.5), structpack.Float(-2.25)},
		},
		{
			name:   "bool char text",
			format: "?c3s",
			values: []structpack.Value{structpack.Bool(true), structpack.Text("A"), structpack.Text("abc")},
		},
		{
			name:   "native order",
			format: "@hiq",
			values: []structpack.Value{structpack.Int(1), structpack.Int(2), structpack.Int(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := structpack.MustCompile(tt.format)
			buf, err := d.Pack(tt.values)
			if err != nil {
				t.Fatalf("Pack error: %v", err)
			}
			got, err := d.Unpack(buf)
			if err != nil {
				t.Fatalf("Unpack error: %v", err)
			}
			if len(got) != len(tt.values) {
				t.Fatalf("Unpack returned %d values, want %d", len(got), len(tt.values))
			}
			for i := range tt.values {
				if got[i] != tt.values[i] {
					t.Errorf("value %d = %#v, want %#v", i, got[i], tt.values[i])
				}
			}
		})
	}
}

func TestPack_DescriptorReuse(t *testing.T) {
	// one descriptor, many packs; outputs must not alias each other
	d := structpack.MustCompile("<i")
	a, err := d.Pack([]structpack.Value{structpack.Int(1)})
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Pack([]structpack.Value{structpack.Int(2)})
	if err != nil {
		t.Fatal(err)
	}
	if a[0] != 0x01 || b[0] != 0x02 {
		t.Errorf("buffers = % x and % x, want independent 01 and 02", a, b)
	}
}
