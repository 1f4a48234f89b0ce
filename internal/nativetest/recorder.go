// Package nativetest provides a call-recording, fault-injecting
// native.Library for tests.
package nativetest

import (
	"sync"

	"github.com/hildjj/mmap-ffi/native"
)

const mapFailed = ^uintptr(0)

// Recorder wraps a native.Library, counting calls per symbol and failing the
// symbols registered with Fail.
//
// An injected munmap or close failure still performs the underlying call, so
// tests exercising teardown errors do not leak mappings or descriptors.
type Recorder struct {
	lib native.Library

	mu       sync.Mutex
	calls    map[string]int
	faults   map[string]int32
	errno    int32
	injected bool
}

// New wraps lib.
func New(lib native.Library) *Recorder {
	return &Recorder{
		lib:    lib,
		calls:  make(map[string]int),
		faults: make(map[string]int32),
	}
}

// Fail makes every subsequent call to the named symbol fail with errno.
func (r *Recorder) Fail(call string, errno int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults[call] = errno
}

// Heal removes a fault registered with Fail.
func (r *Recorder) Heal(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.faults, call)
}

// Calls returns how many times the named symbol was called.
func (r *Recorder) Calls(call string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[call]
}

// Syscalls returns the number of calls that reach the operating system,
// i.e. everything except strerror, errno and release.
func (r *Recorder) Syscalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, call := range []string{"open", "mmap", "madvise", "munmap", "close", "fstat"} {
		n += r.calls[call]
	}
	return n
}

// enter records the call and reports whether it must fail.
func (r *Recorder) enter(call string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[call]++
	errno, ok := r.faults[call]
	r.injected = ok
	if ok {
		r.errno = errno
	}
	return ok
}

func (r *Recorder) Name() string { return "recorder(" + r.lib.Name() + ")" }

func (r *Recorder) Open(path string, flags int32, mode uint32) int32 {
	if r.enter("open") {
		return -1
	}
	return r.lib.Open(path, flags, mode)
}

func (r *Recorder) Mmap(addr, length uintptr, prot, flags, fd int32, offset int64) uintptr {
	if r.enter("mmap") {
		return mapFailed
	}
	return r.lib.Mmap(addr, length, prot, flags, fd, offset)
}

func (r *Recorder) Madvise(addr, length uintptr, advice int32) int32 {
	if r.enter("madvise") {
		return -1
	}
	return r.lib.Madvise(addr, length, advice)
}

func (r *Recorder) Munmap(addr, length uintptr) int32 {
	fail := r.enter("munmap")
	res := r.lib.Munmap(addr, length)
	if fail {
		return -1
	}
	return res
}

func (r *Recorder) Close(fd int32) int32 {
	fail := r.enter("close")
	res := r.lib.Close(fd)
	if fail {
		return -1
	}
	return res
}

func (r *Recorder) Fstat(fd int32, buf []byte) int32 {
	if r.enter("fstat") {
		return -1
	}
	return r.lib.Fstat(fd, buf)
}

func (r *Recorder) Strerror(errno int32) string {
	r.mu.Lock()
	r.calls["strerror"]++
	r.mu.Unlock()
	return r.lib.Strerror(errno)
}

func (r *Recorder) Errno() int32 {
	r.mu.Lock()
	r.calls["errno"]++
	injected, errno := r.injected, r.errno
	r.mu.Unlock()
	if injected {
		return errno
	}
	return r.lib.Errno()
}

func (r *Recorder) Release() error {
	r.mu.Lock()
	r.calls["release"]++
	r.mu.Unlock()
	return r.lib.Release()
}
