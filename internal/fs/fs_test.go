package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	lfs := LocalFS{}

	dir, err := lfs.MkdirTemp(t.TempDir(), "probe-")
	require.NoError(t, err)

	fpath := filepath.Join(dir, "probe.c")
	require.NoError(t, WriteFile(lfs, fpath, []byte("hello"), 0o600))

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	assert.NoError(t, lfs.Remove(fpath))
	_, err = os.Stat(fpath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, lfs.RemoveAll(dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".c", Fault{FailAfterBytes: 3})

	fpath := filepath.Join(t.TempDir(), "probe.c")
	err := WriteFile(ffs, fpath, []byte("hello"), 0o600)
	assert.ErrorIs(t, err, ffs.Err)
	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Empty(t, data)

	other := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, WriteFile(ffs, other, []byte("hello"), 0o600))
	data, err = os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFaultyFS_Remove(t *testing.T) {
	injected := errors.New("remove failed")
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("probe", Fault{FailAfterBytes: -1, FailOnRemove: true, Err: injected})

	dir := t.TempDir()
	fpath := filepath.Join(dir, "probe")
	require.NoError(t, os.WriteFile(fpath, []byte("x"), 0o600))

	assert.ErrorIs(t, ffs.Remove(fpath), injected)
	assert.Equal(t, []string{fpath}, ffs.Removed())

	// The file is still there because the removal never reached the OS.
	_, err := os.Stat(fpath)
	assert.NoError(t, err)

	assert.NoError(t, ffs.RemoveAll(dir))
}

func TestFaultyFS_Close(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("close", Fault{FailAfterBytes: -1, FailOnClose: true})

	dir := t.TempDir()

	// WriteFile reports a failed close even when every byte was written.
	fpath := filepath.Join(dir, "close.txt")
	assert.ErrorIs(t, WriteFile(ffs, fpath, []byte("hello"), 0o600), ffs.Err)
	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, WriteFile(ffs, filepath.Join(dir, "open.txt"), []byte("hello"), 0o600))
}
