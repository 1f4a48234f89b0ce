// Package native binds the C library symbols needed to map a file.
//
// A [Library] exposes open, mmap, madvise, munmap, close, fstat and strerror
// with their C calling conventions intact: failures are reported through
// sentinel return values and the reason is left in errno, readable through
// [Library.Errno]. Numeric flags are passed through untouched, so callers
// must supply values that are correct for the running platform.
//
// Two implementations are provided:
//
//   - [Open] loads the platform C library with dlopen and binds the symbols
//     with dlsym, without cgo.
//   - [Kernel] issues the equivalent system calls through golang.org/x/sys/unix.
//
// errno is thread-local. Callers must keep the goroutine on one OS thread
// (runtime.LockOSThread) between a failing call and the Errno read.
package native
