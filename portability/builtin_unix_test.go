//go:build linux || darwin || freebsd

package portability

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestBuiltin_MatchesHost(t *testing.T) {
	c, ok := builtin[Host()]
	if !ok {
		t.Skipf("%s has no built-in entry", Host())
	}

	var st unix.Stat_t
	assert.Equal(t, int64(unsafe.Offsetof(st.Size)), c.StatOffset)
	assert.Equal(t, int64(unsafe.Sizeof(st)), c.StatSize)
	assert.Equal(t, int64(8), int64(unsafe.Sizeof(st.Size)))

	assert.Equal(t, int32(unix.O_RDONLY), c.ORdOnly)
	assert.Equal(t, int32(unix.O_WRONLY), c.OWrOnly)
	assert.Equal(t, int32(unix.O_RDWR), c.ORdWr)
	assert.Equal(t, int32(unix.PROT_READ), c.ProtRead)
	assert.Equal(t, int32(unix.PROT_WRITE), c.ProtWrite)
	assert.Equal(t, int32(unix.MAP_SHARED), c.MapShared)
	assert.Equal(t, int32(unix.MADV_NORMAL), c.MadvNormal)
	assert.Equal(t, int32(unix.MADV_RANDOM), c.MadvRandom)
	assert.Equal(t, int32(unix.MADV_SEQUENTIAL), c.MadvSequential)
	assert.Equal(t, int32(unix.MADV_WILLNEED), c.MadvWillNeed)
	assert.Equal(t, int32(unix.MADV_DONTNEED), c.MadvDontNeed)
	assert.Equal(t, ^uintptr(0), c.MapFailedAddr())
}
