package sparsetable

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
//
// Implementations must be safe for concurrent use: tables are queried from
// many goroutines at once.
type MetricsCollector interface {
	// RecordBuild is called after each table construction.
	// n is the sequence length, levels the number of precomputed levels,
	// err is nil if successful.
	RecordBuild(kind Kind, n, levels int, duration time.Duration, err error)

	// RecordQuery is called after each query. indexed reports whether the
	// caller asked for a position, err is nil if the range was accepted.
	RecordQuery(kind Kind, indexed bool, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(Kind, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(Kind, bool, error)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildTotalNanos  atomic.Int64
	BuildElements    atomic.Int64
	QueryCount       atomic.Int64
	QueryErrors      atomic.Int64
	IndexQueryCount  atomic.Int64
	IndexQueryErrors atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ Kind, n, _ int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildElements.Add(int64(n))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ Kind, indexed bool, err error) {
	if indexed {
		b.IndexQueryCount.Add(1)
		if err != nil {
			b.IndexQueryErrors.Add(1)
		}
		return
	}
	b.QueryCount.Add(1)
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:       b.BuildCount.Load(),
		BuildErrors:      b.BuildErrors.Load(),
		BuildAvgNanos:    b.getAvgBuildNanos(),
		BuildElements:    b.BuildElements.Load(),
		QueryCount:       b.QueryCount.Load(),
		QueryErrors:      b.QueryErrors.Load(),
		IndexQueryCount:  b.IndexQueryCount.Load(),
		IndexQueryErrors: b.IndexQueryErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildErrors      int64
	BuildAvgNanos    int64
	BuildElements    int64
	QueryCount       int64
	QueryErrors      int64
	IndexQueryCount  int64
	IndexQueryErrors int64
}
