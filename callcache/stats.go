package callcache

import "go.uber.org/zap"

// Metric names used by the cache.
const (
	MetricLookups    = "kernelcall_cache_lookups_total"
	MetricHits       = "kernelcall_cache_hits_total"
	MetricMisses     = "kernelcall_cache_misses_total"
	MetricEvictions  = "kernelcall_cache_evictions_total"
	MetricCollisions = "kernelcall_cache_hash_collisions_total"
	MetricSize       = "kernelcall_cache_size"

	MetricDecodeSeconds = "kernelcall_decode_duration_seconds"
)

// Stats defines the interface for collecting cache metrics.
//
// Implementations must be safe for concurrent use. The promstats subpackage
// provides a Prometheus-backed implementation.
type Stats interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// NoopStats discards all metrics.
// Useful for testing or when metrics are not needed.
type NoopStats struct{}

// Compile-time check that NoopStats implements Stats.
var _ Stats = (*NoopStats)(nil)

// NewNoopStats creates a new no-op collector.
func NewNoopStats() *NoopStats {
	return &NoopStats{}
}

func (s *NoopStats) IncCounter(name string, delta int64)         {}
func (s *NoopStats) SetGauge(name string, value int64)           {}
func (s *NoopStats) ObserveHistogram(name string, value float64) {}

// LogStats implements Stats by logging metrics via zap at debug level.
// Useful in tests and development where no metrics backend runs.
type LogStats struct {
	logger *zap.Logger
}

// Compile-time check that LogStats implements Stats.
var _ Stats = (*LogStats)(nil)

// NewLogStats creates a logger-based collector.
// If logger is nil, a no-op logger is used.
func NewLogStats(logger *zap.Logger) *LogStats {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LogStats{logger: logger}
}

// IncCounter logs a counter increment.
func (s *LogStats) IncCounter(name string, delta int64) {
	s.logger.Debug("counter",
		zap.String("metric", name),
		zap.Int64("delta", delta),
	)
}

// SetGauge logs a gauge value.
func (s *LogStats) SetGauge(name string, value int64) {
	s.logger.Debug("gauge",
		zap.String("metric", name),
		zap.Int64("value", value),
	)
}

// ObserveHistogram logs a histogram observation.
func (s *LogStats) ObserveHistogram(name string, value float64) {
	s.logger.Debug("histogram",
		zap.String("metric", name),
		zap.Float64("value", value),
	)
}
