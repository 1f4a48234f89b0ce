//go:build (darwin || freebsd || linux) && !android

package mmapffi_test

import (
	"context"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mmapffi "github.com/hildjj/mmap-ffi"
	"github.com/hildjj/mmap-ffi/native"
	"github.com/hildjj/mmap-ffi/permission"
)

// openLibc skips the test when the C library cannot be bound, e.g. a glibc
// without an exported fstat.
func openLibc(t *testing.T) native.Library {
	t.Helper()
	lib, err := native.Open("")
	if err != nil {
		t.Skipf("C library not available: %v", err)
	}
	return lib
}

func TestDynamic_ReadOnly(t *testing.T) {
	f, err := mmapffi.New(writeTemp(t, "abc123"),
		mmapffi.WithLibrary(openLibc(t)),
		mmapffi.WithTable(hostTable(t)),
		mmapffi.WithGate(permission.NewStatic(permission.Read)))
	require.NoError(t, err)
	defer f.Close()

	data, err := f.Map(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(data))
	require.NoError(t, f.Advise(mmapffi.AdviceSequential))
	require.NoError(t, f.Close())
}

func TestDynamic_Errno(t *testing.T) {
	f, err := mmapffi.New(t.TempDir()+"/missing.bin",
		mmapffi.WithLibrary(openLibc(t)),
		mmapffi.WithTable(hostTable(t)),
		mmapffi.WithGate(permission.AllowAll))
	require.NoError(t, err)

	_, err = f.Map(context.Background())
	var sysErr *mmapffi.SyscallError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "open", sysErr.Call)
	assert.ErrorIs(t, err, syscall.ENOENT)
	assert.NotEmpty(t, sysErr.Message)
	assert.Equal(t, mmapffi.StateClosed, f.State())
}
