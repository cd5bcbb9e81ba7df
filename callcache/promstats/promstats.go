// Package promstats provides a Prometheus-backed stats collector for the
// call cache.
package promstats

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/kernelcall/callcache"
)

// Stats implements callcache.Stats using Prometheus metrics.
//
// Metrics are registered lazily on first use, so only the metrics the cache
// actually emits show up in the registry.
type Stats struct {
	registry prometheus.Registerer

	mu         sync.RWMutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Stats implements callcache.Stats.
var _ callcache.Stats = (*Stats)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Stats {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	return &Stats{
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// IncCounter increments a counter metric.
func (s *Stats) IncCounter(name string, delta int64) {
	s.getOrCreateCounter(name).Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (s *Stats) SetGauge(name string, value int64) {
	s.getOrCreateGauge(name).Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (s *Stats) ObserveHistogram(name string, value float64) {
	s.getOrCreateHistogram(name).Observe(value)
}

func (s *Stats) getOrCreateCounter(name string) prometheus.Counter {
	s.mu.RLock()
	counter, ok := s.counters[name]
	s.mu.RUnlock()
	if ok {
		return counter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock.
	if counter, ok = s.counters[name]; ok {
		return counter
	}

	counter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: name,
	})
	if err := s.registry.Register(counter); err != nil {
		// Reuse a metric another collector already registered under this name.
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				s.counters[name] = existing

				return existing
			}
		}
	}
	s.counters[name] = counter

	return counter
}

func (s *Stats) getOrCreateGauge(name string) prometheus.Gauge {
	s.mu.RLock()
	gauge, ok := s.gauges[name]
	s.mu.RUnlock()
	if ok {
		return gauge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gauge, ok = s.gauges[name]; ok {
		return gauge
	}

	gauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: name,
	})
	if err := s.registry.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				s.gauges[name] = existing

				return existing
			}
		}
	}
	s.gauges[name] = gauge

	return gauge
}

func (s *Stats) getOrCreateHistogram(name string) prometheus.Histogram {
	s.mu.RLock()
	histogram, ok := s.histograms[name]
	s.mu.RUnlock()
	if ok {
		return histogram
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if histogram, ok = s.histograms[name]; ok {
		return histogram
	}

	histogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    name,
		Buckets: prometheus.DefBuckets,
	})
	if err := s.registry.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				s.histograms[name] = existing

				return existing
			}
		}
	}
	s.histograms[name] = histogram

	return histogram
}
