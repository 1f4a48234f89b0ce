//go:build unix

package nativetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/hildjj/mmap-ffi/native"
)

func TestRecorder_CountsAndFaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc123"), 0o644))

	rec := New(native.Kernel())
	defer rec.Release()

	fd := rec.Open(path, unix.O_RDONLY, 0)
	require.GreaterOrEqual(t, fd, int32(0))
	assert.Equal(t, 1, rec.Calls("open"))

	rec.Fail("mmap", int32(unix.ENOMEM))
	assert.Equal(t, mapFailed, rec.Mmap(0, 6, unix.PROT_READ, unix.MAP_SHARED, fd, 0))
	assert.Equal(t, int32(unix.ENOMEM), rec.Errno())

	rec.Heal("mmap")
	addr := rec.Mmap(0, 6, unix.PROT_READ, unix.MAP_SHARED, fd, 0)
	require.NotEqual(t, mapFailed, addr)

	// An injected munmap failure still unmaps.
	rec.Fail("munmap", int32(unix.EINVAL))
	assert.Equal(t, int32(-1), rec.Munmap(addr, 6))
	rec.Heal("munmap")
	assert.Equal(t, int32(-1), rec.Munmap(addr, 6), "region must already be gone")

	assert.Equal(t, int32(0), rec.Close(fd))
	assert.Equal(t, 2, rec.Calls("mmap"))
	assert.Equal(t, 2, rec.Calls("munmap"))
	assert.Equal(t, 6, rec.Syscalls())
}
