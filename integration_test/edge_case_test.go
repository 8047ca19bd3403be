package integration_test

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/blobstore"
	"github.com/hupe1980/sparsetable/resource"
	"github.com/hupe1980/sparsetable/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleElement(t *testing.T) {
	tbl, err := sparsetable.NewMax([]float64{math.Pi})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Levels())

	v, pos, err := tbl.QueryValueIndex(0, 1)
	require.NoError(t, err)
	assert.Equal(t, math.Pi, v)
	assert.Zero(t, pos)

	_, err = tbl.Query(0, 2)
	assert.ErrorIs(t, err, sparsetable.ErrInvalidRange)
}

func TestPowerOfTwoBoundaries(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7, 8, 9, 15, 16, 17, 31, 32, 33} {
		data := make([]int, n)
		for i := range data {
			data[i] = n - i
		}
		tbl, err := sparsetable.NewMin(data)
		require.NoError(t, err)

		for b := 0; b < n; b++ {
			for e := b + 1; e <= n; e++ {
				pos, err := tbl.QueryIndex(b, e)
				require.NoError(t, err)
				assert.Equal(t, e-1, pos, "n=%d [%d,%d)", n, b, e)
			}
		}
	}
}

func TestMemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})

	_, err := sparsetable.NewMin(make([]int, 10_000), sparsetable.WithResourceController(rc))
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Zero(t, rc.MemoryUsage())

	small, err := sparsetable.NewMin([]int{1, 2, 3}, sparsetable.WithResourceController(rc))
	require.NoError(t, err)
	assert.Positive(t, rc.MemoryUsage())
	small.Release()
	small.Release()
	assert.Zero(t, rc.MemoryUsage())
}

func TestSnapshotStrings(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	words := []string{"pear", "apple", "fig", "apple", "kiwi"}

	require.NoError(t, snapshot.Save(ctx, store, "words", words))
	tbl, err := snapshot.LoadMin[string](ctx, store, "words")
	require.NoError(t, err)

	v, pos, err := tbl.QueryValueIndex(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "apple", v)
	assert.Equal(t, 1, pos)

	v, pos, err = tbl.QueryValueIndex(2, 5)
	require.NoError(t, err)
	assert.Equal(t, "apple", v)
	assert.Equal(t, 3, pos)
}
