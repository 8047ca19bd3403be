package prommetrics

import (
	"errors"
	"testing"

	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/resource"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Table(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc := New(reg)

	tbl, err := sparsetable.NewMin([]int{5, 3, 8, 1, 9, 2}, sparsetable.WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = tbl.Query(1, 4)
	require.NoError(t, err)
	_, err = tbl.QueryIndex(1, 4)
	require.NoError(t, err)
	_, err = tbl.Query(4, 4)
	require.Error(t, err)

	kind := sparsetable.KindOverlapIndexed.String()
	assert.Equal(t, 1.0, promtestutil.ToFloat64(mc.builds.WithLabelValues(kind, "ok")))
	assert.Equal(t, 3.0, promtestutil.ToFloat64(mc.buildLevels.WithLabelValues(kind)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(mc.queries.WithLabelValues(kind, "false", "ok")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(mc.queries.WithLabelValues(kind, "true", "ok")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(mc.queries.WithLabelValues(kind, "false", "invalid_range")))

	assert.Equal(t, 1, promtestutil.CollectAndCount(mc.buildDuration))
}

func TestCollector_BuildError(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc := New(reg, WithNamespace("rmq"), WithConstLabels(prometheus.Labels{"table": "latency"}))

	_, err := sparsetable.NewMax([]int{}, sparsetable.WithMetricsCollector(mc))
	require.ErrorIs(t, err, sparsetable.ErrEmptyInput)

	kind := sparsetable.KindOverlapIndexed.String()
	assert.Equal(t, 1.0, promtestutil.ToFloat64(mc.builds.WithLabelValues(kind, "empty_input")))
	assert.Equal(t, 0, promtestutil.CollectAndCount(mc.buildElements))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "rmq_builds_total")
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", result(nil))
	assert.Equal(t, "invalid_range", result(&sparsetable.RangeError{Begin: 2, End: 1, Len: 3}))
	assert.Equal(t, "empty_input", result(sparsetable.ErrEmptyInput))
	assert.Equal(t, "nil_op", result(sparsetable.ErrNilOp))
	assert.Equal(t, "memory_limit", result(resource.ErrMemoryLimitExceeded))
	assert.Equal(t, "error", result(errors.New("boom")))
}
