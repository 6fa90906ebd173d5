// Package structpack compiles compact textual format strings into binary
// structure layouts and packs/unpacks dynamically typed values against them.
//
// The format language follows the C-struct mini-language tradition: each
// character is a field token (optionally prefixed by a decimal length), and
// byte-order directives switch the endianness used for numeric fields.
//
// # Architecture Overview
//
// The module is organized into a small set of packages:
//
//	structpack/          Root package: format compiler, descriptor, codec
//	├── errors/          Structured error types shared by all phases
//	├── host/            WebAssembly host module exposing the codec to guests
//	├── cmd/structpack/  Command line and interactive inspector
//	└── examples/basic/  Runnable embedding demo
//
// # Quick Start
//
// Compile a format once, then reuse the descriptor:
//
//	desc, err := structpack.Compile("<hh3s")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf, err := desc.Pack([]structpack.Value{
//	    structpack.Int(1),
//	    structpack.Int(2),
//	    structpack.Text("abc"),
//	})
//
//	values, err := desc.Unpack(buf)
//
// # Format Language
//
// Byte-order directives (apply to the whole descriptor; the last one wins):
//
//	@ =   host byte order
//	<     little-endian
//	>     big-endian
//	!     network order (big-endian)
//
// Field tokens, each optionally preceded by a decimal repeat/length count
// (the count is a byte length and only meaningful for s and x):
//
//	s  text, N bytes (default 1)     x  padding, N bytes (default 1)
//	?  bool, 1 byte                  c  character, 1 byte
//	b  int8                          B  uint8
//	h  int16                         H  uint16
//	i  int32                         I  uint32
//	l  long (4 bytes by default)     L  unsigned long
//	q  int64                         Q  uint64
//	f  float32                       d  float64
//
// Layout is exactly as dense as the format states: there is no implicit
// alignment, and padding exists only where x tokens request it.
//
// # Thread Safety
//
// A Descriptor is immutable after Compile and safe for concurrent use.
// Pack and Unpack allocate their own outputs and never share state.
package structpack
