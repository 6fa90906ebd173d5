// Package host exposes the structpack codec to WebAssembly guests as a
// wazero host module.
//
// Guests import functions from the "structpack" module to compile format
// strings and move packed buffers across the linear memory boundary.
// Descriptors live host-side: compile stores the result in a handle table
// and guests refer to it by handle until drop.
//
// # Guest ABI
//
// All parameters are u32 values in guest linear memory terms:
//
//	compile(fmt_ptr, fmt_len) -> i64     handle in the low 32 bits, total
//	                                     size in the high 32, 0 on failure
//	field_count(handle) -> i32           non-padding field count, -1 on
//	                                     bad handle
//	total_size(handle) -> i32            descriptor size in bytes, -1 on
//	                                     bad handle
//	pack(handle, vals_ptr, vals_len,
//	     out_ptr, out_cap) -> i32        bytes written, or a status code
//	unpack(handle, buf_ptr, buf_len,
//	     out_ptr, out_cap) -> i32        bytes written, or a status code
//	drop(handle)                         releases the descriptor
//
// Negative pack/unpack returns are status codes; see the Errno constants.
// drop is idempotent and ignores unknown handles.
//
// # Value Wire Encoding
//
// pack reads and unpack writes a tagged value sequence: a little-endian
// u32 count followed by one entry per value. Each entry is a tag byte
// (0 nil, 1 bool, 2 int, 3 float, 4 text) and its payload: bools are one
// byte, ints and floats are 8 little-endian bytes, text is a u32 byte
// length and that many UTF-8 bytes. EncodeValues and DecodeValues
// implement the same encoding host-side.
//
// # Usage
//
//	r := wazero.NewRuntime(ctx)
//	defer r.Close(ctx)
//
//	h := host.New()
//	mod, err := h.Instantiate(ctx, r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mod.Close(ctx)
//
//	// Instantiate guest modules that import "structpack" as usual.
//
// The descriptor table is mutex-guarded, so host functions are safe for
// concurrent guest calls.
package host
