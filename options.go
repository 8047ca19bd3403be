package sparsetable

import (
	"github.com/hupe1980/sparsetable/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
}

func newOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Option configures table construction.
type Option func(*options)

// WithLogger sets the logger used for construction and query diagnostics.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified about builds and queries.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController charges the memory of the precomputed tables against
// the controller's budget. Construction fails with
// resource.ErrMemoryLimitExceeded when the budget is exhausted; the
// reservation is returned by calling Release on the table.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	t, err := sparsetable.NewMin(values, sparsetable.WithResourceController(rc))
//	if err != nil {
//	    return err
//	}
//	defer t.Release()
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}
