package structpack

import "encoding/binary"

// NativeOrder is the byte order of the host CPU, resolved once at startup.
// The '@' and '=' directives select it, and it is the order a descriptor
// starts with when the format names no directive.
var NativeOrder = resolveNativeOrder()

// NetworkOrder is the conventional wire byte order, selected by '!'.
var NetworkOrder binary.ByteOrder = binary.BigEndian

func resolveNativeOrder() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
