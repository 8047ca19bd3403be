package snapshot

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/blobstore"
	"github.com/hupe1980/sparsetable/codec"
	"github.com/hupe1980/sparsetable/resource"
	"github.com/hupe1980/sparsetable/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	values := testutil.NewRNG(1).Ints(500, -1000, 1000)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(values, WithCompression(c))
			require.NoError(t, err)

			got, err := Decode[int](data)
			require.NoError(t, err)
			assert.Equal(t, values, got)
		})
	}
}

func TestEncodeDecode_Codecs(t *testing.T) {
	values := []float64{1.5, -2.25, 3}

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := Encode(values, WithCodec(c), WithCompression(CompressionNone))
			require.NoError(t, err)

			h, _, err := parseHeader(data)
			require.NoError(t, err)
			assert.Equal(t, c.Name(), h.codec)
			assert.Equal(t, uint64(3), h.count)

			got, err := Decode[float64](data)
			require.NoError(t, err)
			assert.Equal(t, values, got)
		})
	}
}

func TestDecode_Corruption(t *testing.T) {
	data, err := Encode([]int{5, 3, 8, 1, 9, 2}, WithCompression(CompressionNone))
	require.NoError(t, err)

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode[int](data[:3])
		assert.ErrorIs(t, err, ErrCorrupt)

		_, err = Decode[int](data[:len(data)-1])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		_, err := Decode[int](bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[4] = version + 1
		_, err := Decode[int](bad)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("checksum", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-2] ^= 0x01
		_, err := Decode[int](bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("compression", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[5] = 9
		_, err := Decode[int](bad)
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("codec", func(t *testing.T) {
		h, payload, err := parseHeader(data)
		require.NoError(t, err)
		h.codec = "gob"
		bad, err := h.appendTo(nil)
		require.NoError(t, err)
		bad = append(bad, payload...)

		_, err = Decode[int](bad)
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("count", func(t *testing.T) {
		h, payload, err := parseHeader(data)
		require.NoError(t, err)
		h.count = 7
		bad, err := h.appendTo(nil)
		require.NoError(t, err)
		bad = append(bad, payload...)

		_, err = Decode[int](bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestEncode_UnknownCompression(t *testing.T) {
	_, err := Encode([]int{1}, WithCompression(Compression(42)))
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "compression(42)", Compression(42).String())
}

func TestWriteRead(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

	var buf bytes.Buffer
	require.NoError(t, Write(ctx, &buf, []string{"a", "b", "c"}, WithResourceController(rc)))

	got, err := Read[string](ctx, &buf, WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	values := []int{5, 3, 8, 1, 9, 2}
	require.NoError(t, Save(ctx, store, "seq", values, WithCompression(CompressionLZ4)))

	got, err := Load[int](ctx, store, "seq")
	require.NoError(t, err)
	assert.Equal(t, values, got)

	_, err = Load[int](ctx, store, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadMinMax(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	tbl, err := sparsetable.NewMin([]int{5, 3, 8, 1, 9, 2})
	require.NoError(t, err)
	require.NoError(t, Save(ctx, store, "tables/min", tbl.Values()))

	metrics := &sparsetable.BasicMetricsCollector{}
	minTbl, err := LoadMin[int](ctx, store, "tables/min",
		WithTableOptions(sparsetable.WithMetricsCollector(metrics)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.GetStats().BuildCount)

	v, pos, err := minTbl.QueryValueIndex(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 3, pos)

	maxTbl, err := LoadMax[int](ctx, store, "tables/min")
	require.NoError(t, err)
	v, pos, err = maxTbl.QueryValueIndex(0, 6)
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, 4, pos)
}

func TestLoadMin_Empty(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, "empty", []int{}))

	_, err := LoadMin[int](ctx, store, "empty")
	assert.ErrorIs(t, err, sparsetable.ErrEmptyInput)
}
