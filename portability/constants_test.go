package portability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linuxProbeLine = `{"statOffset":48,"statSize":144,"O_RDONLY":0,"O_WRONLY":1,"O_RDWR":2,` +
	`"PROT_READ":1,"PROT_WRITE":2,"MADV_NORMAL":0,"MADV_RANDOM":1,"MADV_SEQUENTIAL":2,` +
	`"MADV_WILLNEED":3,"MADV_DONTNEED":4,"MAP_FAILED":-1,"MAP_SHARED":1}`

func TestParseConstants(t *testing.T) {
	c, err := ParseConstants([]byte(linuxProbeLine))
	require.NoError(t, err)
	assert.Equal(t, builtin["x86_64-unknown-linux-gnu"], c)
	assert.Equal(t, ^uintptr(0), c.MapFailedAddr())
}

func TestParseConstants_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ``},
		{"not json", `statOffset=48`},
		{"array", `[1,2,3]`},
		{"missing key", `{"statOffset":48,"statSize":144}`},
		{"string value", `{"statOffset":"x","statSize":144,"O_RDONLY":0,"O_WRONLY":1,"O_RDWR":2,` +
			`"PROT_READ":1,"PROT_WRITE":2,"MADV_NORMAL":0,"MADV_RANDOM":1,"MADV_SEQUENTIAL":2,` +
			`"MADV_WILLNEED":3,"MADV_DONTNEED":4,"MAP_FAILED":-1,"MAP_SHARED":1}`},
		{"offset outside struct", `{"statOffset":140,"statSize":144,"O_RDONLY":0,"O_WRONLY":1,"O_RDWR":2,` +
			`"PROT_READ":1,"PROT_WRITE":2,"MADV_NORMAL":0,"MADV_RANDOM":1,"MADV_SEQUENTIAL":2,` +
			`"MADV_WILLNEED":3,"MADV_DONTNEED":4,"MAP_FAILED":-1,"MAP_SHARED":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConstants([]byte(tt.line))
			assert.Error(t, err)
		})
	}
}

func TestParseConstants_MissingKeyNamed(t *testing.T) {
	_, err := ParseConstants([]byte(`{"statOffset":48,"statSize":144}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_SHARED")
	assert.NotContains(t, err.Error(), "statSize")
}

func TestConstants_Validate(t *testing.T) {
	c := posix(48, 144)
	require.NoError(t, c.Validate())

	bad := c
	bad.StatSize = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConstants)

	bad = c
	bad.StatOffset = -8
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConstants)

	bad = c
	bad.ProtWrite = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConstants)

	bad = c
	bad.MapShared = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConstants)
}

func TestBuiltin(t *testing.T) {
	table := Builtin()
	require.NotEmpty(t, table)
	for p, c := range table {
		assert.NoError(t, c.Validate(), p)
	}

	delete(table, "x86_64-unknown-linux-gnu")
	_, ok := Builtin()["x86_64-unknown-linux-gnu"]
	assert.True(t, ok, "Builtin must return a copy")
}

func TestConstants_GoString(t *testing.T) {
	s := builtin["aarch64-apple-darwin"].GoString()
	assert.Contains(t, s, "StatOffset: 96, StatSize: 144")
	assert.Contains(t, s, "MapFailed: -1")
	assert.Contains(t, s, "MapShared: 0x1")
}
