//go:build unix

package native

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"
)

const mapFailed = ^uintptr(0)

// Kernel returns a Library that issues the system calls directly through
// golang.org/x/sys/unix rather than a dynamically loaded C library. Flags are
// interpreted by the running kernel, and errno is kept per Library value.
func Kernel() Library {
	return &kernel{mappings: make(map[uintptr][]byte)}
}

type kernel struct {
	errno    unix.Errno
	mappings map[uintptr][]byte // start address -> slice returned by unix.Mmap
}

func (k *kernel) Name() string { return "kernel" }

func (k *kernel) fail(err error) {
	var errno unix.Errno
	if errors.As(err, &errno) {
		k.errno = errno
		return
	}
	k.errno = unix.EINVAL
}

func (k *kernel) Open(path string, flags int32, mode uint32) int32 {
	fd, err := unix.Open(path, int(flags)|unix.O_CLOEXEC, mode)
	if err != nil {
		k.fail(err)
		return -1
	}
	return int32(fd)
}

func (k *kernel) Mmap(_, length uintptr, prot, flags, fd int32, offset int64) uintptr {
	data, err := unix.Mmap(int(fd), offset, int(length), int(prot), int(flags))
	if err != nil {
		k.fail(err)
		return mapFailed
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	k.mappings[addr] = data
	return addr
}

func (k *kernel) Madvise(addr, length uintptr, advice int32) int32 {
	data, ok := k.mappings[addr]
	if !ok || uintptr(len(data)) < length {
		k.errno = unix.EINVAL
		return -1
	}
	if err := unix.Madvise(data[:length], int(advice)); err != nil {
		k.fail(err)
		return -1
	}
	return 0
}

func (k *kernel) Munmap(addr, length uintptr) int32 {
	data, ok := k.mappings[addr]
	if !ok || uintptr(len(data)) != length {
		k.errno = unix.EINVAL
		return -1
	}
	if err := unix.Munmap(data); err != nil {
		k.fail(err)
		return -1
	}
	delete(k.mappings, addr)
	return 0
}

func (k *kernel) Close(fd int32) int32 {
	if err := unix.Close(int(fd)); err != nil {
		k.fail(err)
		return -1
	}
	return 0
}

func (k *kernel) Fstat(fd int32, buf []byte) int32 {
	var st unix.Stat_t
	if uintptr(len(buf)) < unsafe.Sizeof(st) {
		k.errno = unix.EFAULT
		return -1
	}
	if err := unix.Fstat(int(fd), &st); err != nil {
		k.fail(err)
		return -1
	}
	copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(&st)), unsafe.Sizeof(st)))
	return 0
}

func (k *kernel) Strerror(errno int32) string {
	return unix.Errno(errno).Error()
}

func (k *kernel) Errno() int32 {
	return int32(k.errno)
}

func (k *kernel) Release() error {
	k.mappings = nil
	return nil
}
