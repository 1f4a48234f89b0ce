package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64ToInt(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := Int64ToInt(0)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("valid positive", func(t *testing.T) {
		got, err := Int64ToInt(4096)
		assert.NoError(t, err)
		assert.Equal(t, 4096, got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := Int64ToInt(-1)
		assert.Error(t, err)
	})

	t.Run("max int", func(t *testing.T) {
		got, err := Int64ToInt(math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, math.MaxInt, got)
	})
}

func TestUint64ToInt64(t *testing.T) {
	got, err := Uint64ToInt64(math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)

	_, err = Uint64ToInt64(math.MaxInt64 + 1)
	assert.Error(t, err)
}
