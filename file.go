package mmapffi

import (
	"context"
	"encoding/binary"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hildjj/mmap-ffi/internal/conv"
	"github.com/hildjj/mmap-ffi/internal/mem"
	"github.com/hildjj/mmap-ffi/internal/mmap"
	"github.com/hildjj/mmap-ffi/native"
	"github.com/hildjj/mmap-ffi/permission"
	"github.com/hildjj/mmap-ffi/portability"
)

// State is a step of a File's lifecycle.
type State int

const (
	StateUnopened State = iota
	StateOpened
	StateMapped
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpened:
		return "opened"
	case StateMapped:
		return "mapped"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// File is a file mapped through the C library.
//
// Invariants: a valid view implies an open fd; the mapped length never
// changes; there is at most one mapping per File; once released, the library
// is never used again.
type File struct {
	path string
	opts options
	lib  native.Library

	logger  *Logger
	metrics MetricsCollector

	state    State
	fd       int32
	view     mmap.View
	consts   portability.Constants
	reserved int64 // bytes charged to the resource controller
}

// New prepares path for mapping and binds the C library. path may be a
// file: URI. New does not touch the file system; see Map.
func New(path string, opts ...Option) (*File, error) {
	local, err := localPath(path)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	if o.offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrInvalidRange, o.offset)
	}

	lib := o.library
	if lib == nil {
		lib, err = native.Open(o.libraryName)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLibraryBind, err)
		}
	}

	return &File{
		path:    local,
		opts:    o,
		lib:     lib,
		logger:  o.logger.WithPath(local),
		metrics: o.metricsCollector,
		fd:      -1,
	}, nil
}

func localPath(path string) (string, error) {
	if path == "" || strings.IndexByte(path, 0) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if strings.HasPrefix(path, "file:") {
		u, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("%w: remote host %q", ErrInvalidPath, u.Host)
		}
		p := u.Path
		if p == "" && u.Opaque != "" {
			if p, err = url.PathUnescape(u.Opaque); err != nil {
				return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
			}
		}
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		path = filepath.FromSlash(p)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return abs, nil
}

// Map opens and maps the file and returns the mapped bytes. The slice aliases
// the mapping and must not be used after Close.
//
// The platform constants are resolved first, probing if needed. Then every
// capability the access mode needs is requested from the gate; a denial
// returns ErrPermissionDenied before any file system call. A failing native
// call returns a *SyscallError and leaves the File closed.
func (f *File) Map(ctx context.Context) ([]byte, error) {
	start := time.Now()
	data, err := f.mapFile(ctx)
	f.metrics.RecordMap(int64(len(data)), time.Since(start), err)
	f.logger.LogMap(ctx, f.opts.mode, len(data), err)
	return data, err
}

func (f *File) mapFile(ctx context.Context) ([]byte, error) {
	switch f.state {
	case StateMapped:
		return nil, ErrAlreadyMapped
	case StateClosed:
		return nil, ErrAlreadyClosed
	}

	c, err := f.opts.table.Resolve(ctx, f.opts.platform, f.opts.prober)
	if err != nil {
		return nil, err
	}
	f.consts = c

	for _, capability := range f.opts.mode.capabilities() {
		granted, err := f.opts.gate.Request(ctx, permission.Request{Capability: capability, Resource: f.path})
		if err != nil {
			return nil, fmt.Errorf("mmap: request %s access to %s: %w", capability, f.path, err)
		}
		if !granted {
			return nil, fmt.Errorf("%w: %s access to %s", ErrPermissionDenied, capability, f.path)
		}
	}

	openFlags, prot, err := f.opts.mode.flags(c)
	if err != nil {
		return nil, err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	fd := f.lib.Open(f.path, openFlags, 0)
	if fd < 0 {
		return nil, f.fail("open")
	}
	f.fd = fd
	f.state = StateOpened

	length := f.opts.length
	if length < 0 {
		size, err := f.size()
		if err != nil {
			return nil, err
		}
		if f.opts.offset > size {
			_ = f.close()
			return nil, fmt.Errorf("%w: offset %d beyond end of %d-byte file", ErrInvalidRange, f.opts.offset, size)
		}
		length = size - f.opts.offset
	}

	n, err := conv.Int64ToInt(length)
	if err != nil {
		_ = f.close()
		return nil, fmt.Errorf("%w: length: %w", ErrInvalidRange, err)
	}

	if err := f.reserve(ctx, length); err != nil {
		_ = f.close()
		return nil, err
	}

	addr := f.lib.Mmap(0, uintptr(length), prot, c.MapShared, fd, f.opts.offset)
	if addr == c.MapFailedAddr() {
		f.opts.controller.ReleaseMapping(length)
		return nil, f.fail("mmap")
	}
	f.view = mmap.NewView(addr, n)
	f.reserved = length
	f.state = StateMapped
	return f.view.Bytes(), nil
}

// reserve charges length bytes to the controller's mapped bytes budget.
func (f *File) reserve(ctx context.Context, length int64) error {
	ctrl := f.opts.controller
	var err error
	if f.opts.noBudgetWait {
		err = ctrl.TryAcquireMapping(length)
	} else {
		err = ctrl.AcquireMapping(ctx, length)
	}
	if err != nil {
		return fmt.Errorf("mmap: reserving %d bytes of a %d-byte budget: %w", length, ctrl.MappedBytesLimit(), err)
	}
	return nil
}

// size reads st_size through fstat, using the resolved struct layout.
func (f *File) size() (int64, error) {
	buf := mem.AllocAligned(int(f.consts.StatSize))
	if f.lib.Fstat(f.fd, buf) < 0 {
		return 0, f.fail("fstat")
	}
	size, err := conv.Uint64ToInt64(binary.NativeEndian.Uint64(buf[f.consts.StatOffset:]))
	if err != nil {
		_ = f.close()
		return 0, fmt.Errorf("%w: st_size: %w", ErrInvalidRange, err)
	}
	return size, nil
}

// Advise hints the kernel about the expected access pattern of the whole
// mapping.
func (f *File) Advise(advice Advice) error {
	return f.AdviseContext(context.Background(), advice)
}

// AdviseContext is Advise with a context. Only AdviceWillNeed can block, while
// waiting for the resource controller's prefetch limit.
func (f *File) AdviseContext(ctx context.Context, advice Advice) error {
	err := f.advise(ctx, advice)
	f.metrics.RecordAdvise(advice, err)
	f.logger.LogAdvise(ctx, advice, err)
	return err
}

func (f *File) advise(ctx context.Context, advice Advice) error {
	switch f.state {
	case StateClosed:
		return ErrAlreadyClosed
	case StateUnopened, StateOpened:
		return ErrNotYetMapped
	}

	hint, err := advice.native(f.consts)
	if err != nil {
		return err
	}
	if advice == AdviceWillNeed {
		if err := f.opts.controller.AcquirePrefetch(ctx, int64(f.view.Len())); err != nil {
			return err
		}
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if f.lib.Madvise(f.view.Addr(), uintptr(f.view.Len()), hint) < 0 {
		return f.fail("madvise")
	}
	return nil
}

// fail turns the pending errno into a *SyscallError and closes the file.
// Errors from the close are dropped. The caller must hold the OS thread.
func (f *File) fail(call string) error {
	err := f.syscallError(call)
	_ = f.close()
	return err
}

func (f *File) syscallError(call string) *SyscallError {
	errno := f.lib.Errno()
	return &SyscallError{Call: call, Errno: errno, Message: f.lib.Strerror(errno)}
}

// Bytes returns the mapped bytes, or nil unless the File is mapped.
func (f *File) Bytes() []byte {
	if f.state != StateMapped {
		return nil
	}
	return f.view.Bytes()
}

// Len returns the mapped length, or 0 unless the File is mapped.
func (f *File) Len() int {
	if f.state != StateMapped {
		return 0
	}
	return f.view.Len()
}

func (f *File) State() State     { return f.state }
func (f *File) Path() string     { return f.path }
func (f *File) Mode() AccessMode { return f.opts.mode }

// Constants returns the platform constants resolved by Map.
func (f *File) Constants() portability.Constants { return f.consts }

func (f *File) mapped() error {
	switch f.state {
	case StateMapped:
		return nil
	case StateClosed:
		return ErrAlreadyClosed
	default:
		return ErrNotYetMapped
	}
}

// ReadAt implements io.ReaderAt over the mapping.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if err := f.mapped(); err != nil {
		return 0, err
	}
	if !f.opts.mode.readable() {
		return 0, ErrWriteOnly
	}
	return f.view.ReadAt(p, off)
}

// WriteAt implements io.WriterAt over the mapping. Writes never grow the
// file.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if err := f.mapped(); err != nil {
		return 0, err
	}
	if !f.opts.mode.writable() {
		return 0, ErrReadOnly
	}
	return f.view.WriteAt(p, off)
}

// Region returns size bytes of the mapping starting at offset.
func (f *File) Region(offset, size int) ([]byte, error) {
	if err := f.mapped(); err != nil {
		return nil, err
	}
	b, err := f.view.Region(offset, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	return b, nil
}
