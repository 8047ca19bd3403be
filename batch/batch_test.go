package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/resource"
	"github.com/hupe1980/sparsetable/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRanges(rng *testutil.RNG, n, count int) []Range {
	out := make([]Range, count)
	for i := range out {
		b, e := rng.Range(n)
		out[i] = Range{Begin: b, End: e}
	}
	return out
}

func TestRun(t *testing.T) {
	rng := testutil.NewRNG(7)
	data := rng.Ints(1000, -500, 500)
	tbl, err := sparsetable.New(data, sparsetable.Sum[int]{})
	require.NoError(t, err)

	ranges := randomRanges(rng, len(data), 2000)
	got, err := Run(context.Background(), tbl, ranges, Options{Concurrency: 4, ChunkSize: 64})
	require.NoError(t, err)
	require.Len(t, got, len(ranges))

	for i, r := range ranges {
		assert.Equal(t, testutil.Sum(data[r.Begin:r.End]), got[i], "range %d [%d,%d)", i, r.Begin, r.End)
	}
}

func TestRun_Empty(t *testing.T) {
	tbl, err := sparsetable.NewMin([]int{1, 2, 3})
	require.NoError(t, err)

	got, err := Run(context.Background(), tbl, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRun_InvalidRange(t *testing.T) {
	tbl, err := sparsetable.NewMin([]int{5, 3, 8, 1, 9, 2})
	require.NoError(t, err)

	ranges := []Range{{0, 6}, {2, 2}, {1, 4}}
	_, err = Run(context.Background(), tbl, ranges, Options{Concurrency: 1, ChunkSize: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, sparsetable.ErrInvalidRange)
	assert.Contains(t, err.Error(), "range 1")

	var re *sparsetable.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 2, re.Begin)
	assert.Equal(t, 2, re.End)
}

func TestRun_Canceled(t *testing.T) {
	tbl, err := sparsetable.NewMax([]int{1, 2, 3})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, tbl, []Range{{0, 3}}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Controller(t *testing.T) {
	rng := testutil.NewRNG(11)
	data := rng.Ints(300, 0, 100)
	tbl, err := sparsetable.NewMax(data)
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{MaxWorkers: 2})
	ranges := randomRanges(rng, len(data), 500)

	got, err := Run(context.Background(), tbl, ranges, Options{Concurrency: 8, ChunkSize: 10, Controller: rc})
	require.NoError(t, err)
	for i, r := range ranges {
		want, _ := testutil.ArgMax(data[r.Begin:r.End])
		assert.Equal(t, want, got[i])
	}

	// All slots are returned.
	assert.True(t, rc.TryAcquireWorker())
	assert.True(t, rc.TryAcquireWorker())
	assert.False(t, rc.TryAcquireWorker())
}

func TestRunIndex(t *testing.T) {
	rng := testutil.NewRNG(3)
	data := rng.Ints(400, 0, 20)
	tbl, err := sparsetable.NewMin(data)
	require.NoError(t, err)

	ranges := randomRanges(rng, len(data), 800)
	got, err := RunIndex(context.Background(), tbl, ranges, Options{Concurrency: 3, ChunkSize: 50})
	require.NoError(t, err)

	for i, r := range ranges {
		want, pos := testutil.ArgMin(data[r.Begin:r.End])
		assert.Equal(t, want, got[i].Value)
		assert.Equal(t, r.Begin+pos, got[i].Index)
	}
}

func TestWinners(t *testing.T) {
	tbl, err := sparsetable.NewMin([]int{5, 3, 8, 1, 9, 2})
	require.NoError(t, err)

	ranges := []Range{{0, 6}, {1, 4}, {0, 2}, {4, 6}, {2, 3}}
	bm, err := Winners(context.Background(), tbl, ranges, Options{})
	require.NoError(t, err)

	assert.Equal(t, []uint32{1, 2, 3, 5}, bm.ToArray())
	assert.True(t, bm.Contains(3))
	assert.False(t, bm.Contains(4))
}

func TestWinners_InvalidRange(t *testing.T) {
	tbl, err := sparsetable.NewIndexed([]int{4, 4, 4}, sparsetable.Min[int]{})
	require.NoError(t, err)

	_, err = Winners(context.Background(), tbl, []Range{{0, 4}}, Options{})
	assert.ErrorIs(t, err, sparsetable.ErrInvalidRange)
}
