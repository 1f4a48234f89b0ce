package mmap

import (
	"io"
	"unsafe"
)

// View is a handle to a mapped region: the address returned by mmap and the
// mapped length.
type View struct {
	addr uintptr
	size int
}

// NewView wraps a mapped region. A zero addr or non-positive size yields the
// invalid View.
func NewView(addr uintptr, size int) View {
	if addr == 0 || size <= 0 {
		return View{}
	}
	return View{addr: addr, size: size}
}

// Valid reports whether v refers to a mapped region.
func (v View) Valid() bool {
	return v.addr != 0
}

// Addr returns the start address of the region.
func (v View) Addr() uintptr {
	return v.addr
}

// Len returns the size of the region in bytes.
func (v View) Len() int {
	return v.size
}

// Bytes returns the region as a byte slice, or nil for the invalid View.
// Warning: The slice is valid only until the region is unmapped.
func (v View) Bytes() []byte {
	if !v.Valid() {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v.addr)), v.size)
}

// ReadAt implements io.ReaderAt.
func (v View) ReadAt(p []byte, off int64) (n int, err error) {
	if !v.Valid() {
		return 0, ErrUnmapped
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(v.size) {
		return 0, io.EOF
	}
	n = copy(p, v.Bytes()[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. Writes never extend the region.
func (v View) WriteAt(p []byte, off int64) (n int, err error) {
	if !v.Valid() {
		return 0, ErrUnmapped
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(v.size) {
		return 0, ErrOutOfBounds
	}
	n = copy(v.Bytes()[off:], p)
	if n < len(p) {
		return n, ErrOutOfBounds
	}
	return n, nil
}
