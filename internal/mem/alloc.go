package mem

import (
	"unsafe"
)

// StructAlignment is the alignment used for C struct buffers. It covers the
// widest scalar field of any struct stat layout.
const StructAlignment = 16

// AllocAligned allocates a zeroed byte slice of the given size whose first
// byte is at an address divisible by StructAlignment. It returns nil for a
// non-positive size.
//
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+StructAlignment)
	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // alignment needs the address
	offset := (StructAlignment - (addr & (StructAlignment - 1))) & (StructAlignment - 1)
	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}
