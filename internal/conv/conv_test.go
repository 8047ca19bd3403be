package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTo(t *testing.T) {
	t.Run("int to uint32", func(t *testing.T) {
		got, err := To[uint32](123)
		require.NoError(t, err)
		assert.Equal(t, uint32(123), got)

		_, err = To[uint32](-1)
		assert.ErrorIs(t, err, ErrOverflow)

		_, err = To[uint32](int64(math.MaxUint32) + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("uint64 to int", func(t *testing.T) {
		got, err := To[int](uint64(math.MaxInt))
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, got)

		_, err = To[int](uint64(math.MaxInt) + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("int to uint8", func(t *testing.T) {
		got, err := To[uint8](255)
		require.NoError(t, err)
		assert.Equal(t, uint8(255), got)

		_, err = To[uint8](256)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("int8 sign", func(t *testing.T) {
		_, err := To[int8](uint8(200))
		assert.ErrorIs(t, err, ErrOverflow)

		got, err := To[int64](int8(-5))
		require.NoError(t, err)
		assert.Equal(t, int64(-5), got)
	})

	t.Run("message", func(t *testing.T) {
		_, err := To[uint16](70000)
		assert.EqualError(t, err, "conv: integer overflow: 70000 does not fit in uint16")
	})
}

