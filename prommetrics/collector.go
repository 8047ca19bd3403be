// Package prommetrics exports table metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := prommetrics.New(reg)
//	tbl, err := sparsetable.NewMin(data, sparsetable.WithMetricsCollector(mc))
package prommetrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "sparsetable"

// Collector implements sparsetable.MetricsCollector on Prometheus vectors.
type Collector struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	buildElements *prometheus.HistogramVec
	buildLevels   *prometheus.GaugeVec
	queries       *prometheus.CounterVec
}

var _ sparsetable.MetricsCollector = (*Collector)(nil)

type options struct {
	namespace   string
	constLabels prometheus.Labels
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace overrides the metric namespace (default "sparsetable").
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithConstLabels attaches labels to every metric, e.g. a table name.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) { o.constLabels = labels }
}

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, optFns ...Option) *Collector {
	o := options{namespace: defaultNamespace}
	for _, fn := range optFns {
		fn(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "builds_total",
			Help:        "Total table constructions by kind and result",
			ConstLabels: o.constLabels,
		}, []string{"kind", "result"}),
		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "build_duration_seconds",
			Help:        "Table construction duration in seconds",
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 12), // 10us to ~40s
			ConstLabels: o.constLabels,
		}, []string{"kind"}),
		buildElements: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "build_elements",
			Help:        "Sequence length per successful construction",
			Buckets:     prometheus.ExponentialBuckets(16, 4, 10),
			ConstLabels: o.constLabels,
		}, []string{"kind"}),
		buildLevels: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   o.namespace,
			Name:        "build_levels",
			Help:        "Precomputed levels of the most recent construction",
			ConstLabels: o.constLabels,
		}, []string{"kind"}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "queries_total",
			Help:        "Total queries by kind, position tracking and result",
			ConstLabels: o.constLabels,
		}, []string{"kind", "indexed", "result"}),
	}
}

// RecordBuild implements sparsetable.MetricsCollector.
func (c *Collector) RecordBuild(kind sparsetable.Kind, n, levels int, duration time.Duration, err error) {
	k := kind.String()
	c.builds.WithLabelValues(k, result(err)).Inc()
	c.buildDuration.WithLabelValues(k).Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.buildElements.WithLabelValues(k).Observe(float64(n))
	c.buildLevels.WithLabelValues(k).Set(float64(levels))
}

// RecordQuery implements sparsetable.MetricsCollector.
func (c *Collector) RecordQuery(kind sparsetable.Kind, indexed bool, err error) {
	c.queries.WithLabelValues(kind.String(), strconv.FormatBool(indexed), result(err)).Inc()
}

// result maps an error to a low-cardinality label value.
func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sparsetable.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, sparsetable.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, sparsetable.ErrNilOp):
		return "nil_op"
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		return "memory_limit"
	default:
		return "error"
	}
}
