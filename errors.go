package mmapffi

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/hildjj/mmap-ffi/portability"
)

var (
	// ErrLibraryBind is returned by New when the C library cannot be loaded
	// or a symbol cannot be bound.
	ErrLibraryBind = errors.New("mmap: cannot bind C library")

	// ErrPermissionDenied is returned when the permission gate denies a
	// capability the access mode needs.
	ErrPermissionDenied = errors.New("mmap: permission denied")

	ErrInvalidAccessMode = errors.New("mmap: invalid access mode")
	ErrInvalidAdvice     = errors.New("mmap: invalid advice")
	ErrInvalidPath       = errors.New("mmap: invalid path")

	// ErrInvalidRange is returned for a negative offset or length, or an
	// offset past the end of the file.
	ErrInvalidRange = errors.New("mmap: invalid range")

	ErrAlreadyMapped = errors.New("mmap: already mapped")
	ErrAlreadyClosed = errors.New("mmap: already closed")
	ErrNotYetMapped  = errors.New("mmap: not yet mapped")

	// ErrReadOnly is returned by WriteAt on a ReadOnly file.
	ErrReadOnly = errors.New("mmap: file is mapped read-only")
	// ErrWriteOnly is returned by ReadAt on a WriteOnly file.
	ErrWriteOnly = errors.New("mmap: file is mapped write-only")

	// ErrProbeCompilation and ErrProbeExecution are returned by Map when the
	// platform constants had to be probed and the probe failed.
	ErrProbeCompilation = portability.ErrProbeCompilation
	ErrProbeExecution   = portability.ErrProbeExecution
)

// SyscallError reports a failed C library call.
//
// errors.Is(err, syscall.EACCES) and similar checks work through Unwrap.
type SyscallError struct {
	Call    string
	Errno   int32
	Message string
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("mmap: %s: %s (errno %d)", e.Call, e.Message, e.Errno)
}

func (e *SyscallError) Unwrap() error { return syscall.Errno(e.Errno) }
