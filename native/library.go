package native

import "errors"

// ErrUnsupported is returned by Open on platforms without a dynamic loader.
var ErrUnsupported = errors.New("native: dynamic loading is not supported on this platform")

// Library is a bound C library.
//
// Open, Madvise, Munmap, Close and Fstat return a negative value on failure.
// Mmap returns the platform's MAP_FAILED pointer on failure.
type Library interface {
	// Name returns the name the library was bound from.
	Name() string

	Open(path string, flags int32, mode uint32) int32
	Mmap(addr, length uintptr, prot, flags, fd int32, offset int64) uintptr
	Madvise(addr, length uintptr, advice int32) int32
	Munmap(addr, length uintptr) int32
	Close(fd int32) int32

	// Fstat fills buf with the platform's struct stat. buf must be at least
	// as large as the structure.
	Fstat(fd int32, buf []byte) int32

	Strerror(errno int32) string
	Errno() int32

	// Release unbinds the library. No other method may be called afterwards.
	Release() error
}

// DefaultLibraryName returns the C library loaded by Open("").
func DefaultLibraryName() string {
	return defaultLibraryNames[0]
}
