// Package mmapffi maps files into memory by calling the platform C library
// directly (open, fstat, mmap, madvise, munmap, close) instead of going
// through a runtime mapping primitive.
//
// The flag values and the struct stat layout these calls need are not
// portable. They are resolved per platform from a [portability.Table], which
// holds built-in entries and probes the host with a small C program on a
// miss.
//
// # Quick Start
//
//	f, err := mmapffi.New("data.bin")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	data, err := f.Map(ctx)
//	if err != nil {
//	    return err
//	}
//	_ = f.Advise(mmapffi.AdviceSequential)
//
// Or scoped, with Close guaranteed on every exit path:
//
//	err := mmapffi.Use(ctx, "data.bin", func(f *mmapffi.File, data []byte) error {
//	    return process(data)
//	})
//
// # Lifecycle
//
// A [File] moves through Unopened, Opened, Mapped and Closed. Closed is
// terminal. A failing native call during Map closes the file, so the only
// states a caller observes after Map are Mapped, Closed, or Unopened when
// the failure happened before the file was opened (permission denied,
// probe failure).
//
// Before anything touches the file system, Map asks a [permission.Gate] for
// the capabilities the access mode needs: read for ReadOnly and ReadWrite,
// write for WriteOnly and ReadWrite.
//
// # Errors
//
// Native failures are reported as [*SyscallError], carrying errno and the
// C library's strerror text. It unwraps to syscall.Errno:
//
//	if errors.Is(err, syscall.ENOENT) { ... }
//
// A File is not safe for concurrent use.
package mmapffi
