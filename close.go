package mmapffi

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/hildjj/mmap-ffi/internal/mmap"
)

// Close unmaps the file, closes the descriptor and releases the C library.
// Every step is attempted even if an earlier one fails; the errors are
// joined. Close is idempotent and valid in any state. Afterwards the File is
// Closed.
func (f *File) Close() error {
	if f == nil || f.lib == nil {
		return nil
	}
	err := f.close()
	f.metrics.RecordClose(err)
	f.logger.LogClose(context.Background(), err)
	return err
}

func (f *File) close() error {
	if f.lib == nil {
		return nil
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var errs []error
	if f.view.Valid() {
		view := f.view
		f.view = mmap.View{}
		f.opts.controller.ReleaseMapping(f.reserved)
		f.reserved = 0
		if f.lib.Munmap(view.Addr(), uintptr(view.Len())) < 0 {
			errs = append(errs, f.syscallError("munmap"))
		}
	}
	if f.fd >= 0 {
		fd := f.fd
		f.fd = -1
		if f.lib.Close(fd) < 0 {
			errs = append(errs, f.syscallError("close"))
		}
	}
	f.state = StateClosed

	lib := f.lib
	f.lib = nil
	if err := lib.Release(); err != nil {
		errs = append(errs, fmt.Errorf("mmap: release %s: %w", lib.Name(), err))
	}
	return errors.Join(errs...)
}
