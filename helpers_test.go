//go:build linux || darwin || freebsd

package mmapffi_test

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	mmapffi "github.com/hildjj/mmap-ffi"
	"github.com/hildjj/mmap-ffi/internal/nativetest"
	"github.com/hildjj/mmap-ffi/native"
	"github.com/hildjj/mmap-ffi/permission"
	"github.com/hildjj/mmap-ffi/portability"
)

// hostConstants derives the constants for the running kernel from x/sys, so
// tests do not depend on the built-in table or a C compiler.
func hostConstants() portability.Constants {
	var st unix.Stat_t
	return portability.Constants{
		StatOffset:     int64(unsafe.Offsetof(st.Size)),
		StatSize:       int64(unsafe.Sizeof(st)),
		ORdOnly:        unix.O_RDONLY,
		OWrOnly:        unix.O_WRONLY,
		ORdWr:          unix.O_RDWR,
		ProtRead:       unix.PROT_READ,
		ProtWrite:      unix.PROT_WRITE,
		MadvNormal:     unix.MADV_NORMAL,
		MadvRandom:     unix.MADV_RANDOM,
		MadvSequential: unix.MADV_SEQUENTIAL,
		MadvWillNeed:   unix.MADV_WILLNEED,
		MadvDontNeed:   unix.MADV_DONTNEED,
		MapFailed:      -1,
		MapShared:      unix.MAP_SHARED,
	}
}

func hostTable(t *testing.T) *portability.Table {
	t.Helper()
	table := portability.NewTable(portability.WithoutBuiltins())
	require.NoError(t, table.Store(portability.Host(), hostConstants()))
	return table
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newFile returns an unmapped File on path backed by a recorder over the
// kernel library. Callers' options are applied last.
func newFile(t *testing.T, path string, opts ...mmapffi.Option) (*mmapffi.File, *nativetest.Recorder) {
	t.Helper()
	rec := nativetest.New(native.Kernel())
	base := []mmapffi.Option{
		mmapffi.WithLibrary(rec),
		mmapffi.WithTable(hostTable(t)),
		mmapffi.WithGate(permission.AllowAll),
	}
	f, err := mmapffi.New(path, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f, rec
}
