package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	values := []int64{5, -3, 8, 1, 9, 2}

	for _, c := range []Codec{JSON{}, GoJSON{}, nil} {
		data, err := Encode(c, values)
		require.NoError(t, err)

		got, err := Decode[int64](c, data)
		require.NoError(t, err)
		assert.Equal(t, values, got)
	}
}

func TestCrossCodec(t *testing.T) {
	values := []string{"b", "a", "c"}

	data, err := Encode(GoJSON{}, values)
	require.NoError(t, err)

	got, err := Decode[string](JSON{}, data)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(JSON{}, []float64{math.NaN()})
	assert.ErrorContains(t, err, "codec json: encode 1 values")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode[int](GoJSON{}, []byte("[1,2"))
	assert.ErrorContains(t, err, "codec go-json: decode")
}
