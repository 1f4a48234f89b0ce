//go:build (darwin || freebsd || linux) && !android

package native

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

type dynamic struct {
	name   string
	handle uintptr

	open     func(path string, flags int32, mode uint32) int32
	mmap     func(addr, length uintptr, prot, flags, fd int32, offset int64) uintptr
	madvise  func(addr, length uintptr, advice int32) int32
	munmap   func(addr, length uintptr) int32
	close    func(fd int32) int32
	fstat    func(fd int32, buf unsafe.Pointer) int32
	strerror func(errnum int32) string
	errnoLoc func() unsafe.Pointer
}

// Open loads the named C library and binds the symbols of [Library].
// An empty name tries the platform defaults in order.
func Open(name string) (Library, error) {
	if name != "" {
		return openLibrary(name)
	}
	var errs []error
	for _, candidate := range defaultLibraryNames {
		lib, err := openLibrary(candidate)
		if err == nil {
			return lib, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func openLibrary(name string) (Library, error) {
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("native: dlopen %s: %w", name, err)
	}

	d := &dynamic{name: name, handle: handle}
	symbols := []struct {
		fptr any
		name string
	}{
		{&d.open, "open"},
		{&d.mmap, "mmap"},
		{&d.madvise, "madvise"},
		{&d.munmap, "munmap"},
		{&d.close, "close"},
		{&d.fstat, fstatSymbol()},
		{&d.strerror, "strerror"},
		{&d.errnoLoc, errnoSymbol},
	}
	for _, sym := range symbols {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("native: dlsym %s in %s: %w", sym.name, name, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	return d, nil
}

func (d *dynamic) Name() string { return d.name }

func (d *dynamic) Open(path string, flags int32, mode uint32) int32 {
	return d.open(path, flags, mode)
}

func (d *dynamic) Mmap(addr, length uintptr, prot, flags, fd int32, offset int64) uintptr {
	return d.mmap(addr, length, prot, flags, fd, offset)
}

func (d *dynamic) Madvise(addr, length uintptr, advice int32) int32 {
	return d.madvise(addr, length, advice)
}

func (d *dynamic) Munmap(addr, length uintptr) int32 {
	return d.munmap(addr, length)
}

func (d *dynamic) Close(fd int32) int32 {
	return d.close(fd)
}

func (d *dynamic) Fstat(fd int32, buf []byte) int32 {
	if len(buf) == 0 {
		return d.fstat(fd, nil)
	}
	return d.fstat(fd, unsafe.Pointer(&buf[0]))
}

func (d *dynamic) Strerror(errno int32) string {
	return d.strerror(errno)
}

func (d *dynamic) Errno() int32 {
	return *(*int32)(d.errnoLoc())
}

func (d *dynamic) Release() error {
	if d.handle == 0 {
		return nil
	}
	handle := d.handle
	d.handle = 0
	return purego.Dlclose(handle)
}
