package promstats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/arloliu/kernelcall/callcache"
)

// findMetric gathers the registry and returns the family with the given name.
func findMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}

	return nil
}

func TestNew_DefaultRegistry(t *testing.T) {
	s := New(nil)
	if s == nil {
		t.Fatal("New(nil) returned nil")
	}
	if s.registry == nil {
		t.Error("registry should not be nil")
	}
}

func TestNew_CustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)
	if s.registry != reg {
		t.Error("registry should be the custom registry")
	}
}

func TestStats_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)

	s.IncCounter(callcache.MetricHits, 5)
	s.IncCounter(callcache.MetricHits, 3)

	mf := findMetric(t, reg, callcache.MetricHits)
	if mf == nil {
		t.Fatalf("counter %s not found in registry", callcache.MetricHits)
	}
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 8 {
		t.Errorf("counter value = %v, want 8", val)
	}
}

func TestStats_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)

	s.SetGauge(callcache.MetricSize, 42)
	s.SetGauge(callcache.MetricSize, 17)

	mf := findMetric(t, reg, callcache.MetricSize)
	if mf == nil {
		t.Fatalf("gauge %s not found in registry", callcache.MetricSize)
	}
	if val := mf.GetMetric()[0].GetGauge().GetValue(); val != 17 {
		t.Errorf("gauge value = %v, want 17", val)
	}
}

func TestStats_ObserveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)

	s.ObserveHistogram(callcache.MetricDecodeSeconds, 0.002)
	s.ObserveHistogram(callcache.MetricDecodeSeconds, 0.015)
	s.ObserveHistogram(callcache.MetricDecodeSeconds, 0.4)

	mf := findMetric(t, reg, callcache.MetricDecodeSeconds)
	if mf == nil {
		t.Fatalf("histogram %s not found in registry", callcache.MetricDecodeSeconds)
	}
	if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 3 {
		t.Errorf("histogram count = %v, want 3", count)
	}
}

func TestStats_ReuseMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)

	// Repeated use must register a single collector.
	s.IncCounter("reuse_test", 1)
	s.IncCounter("reuse_test", 1)
	s.IncCounter("reuse_test", 1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	count := 0
	for _, mf := range families {
		if mf.GetName() == "reuse_test" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 1 metric family named reuse_test, got %d", count)
	}
}

func TestStats_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()

	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "preexisting_counter",
		Help: "preexisting_counter",
	})
	reg.MustRegister(existing)
	existing.Add(100)

	s := New(reg)
	s.IncCounter("preexisting_counter", 5)

	mf := findMetric(t, reg, "preexisting_counter")
	if mf == nil {
		t.Fatal("preexisting_counter not found in registry")
	}
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 105 {
		t.Errorf("counter value = %v, want 105", val)
	}
}

func TestStats_ConcurrentAccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(reg)

	done := make(chan struct{})
	for range 10 {
		go func() {
			for j := range 100 {
				s.IncCounter("concurrent_counter", 1)
				s.SetGauge("concurrent_gauge", int64(j))
				s.ObserveHistogram("concurrent_histogram", float64(j))
			}
			done <- struct{}{}
		}()
	}
	for range 10 {
		<-done
	}

	mf := findMetric(t, reg, "concurrent_counter")
	if mf == nil {
		t.Fatal("concurrent_counter not found in registry")
	}
	if val := mf.GetMetric()[0].GetCounter().GetValue(); val != 1000 {
		t.Errorf("counter value = %v, want 1000", val)
	}

	mf = findMetric(t, reg, "concurrent_histogram")
	if mf == nil {
		t.Fatal("concurrent_histogram not found in registry")
	}
	if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1000 {
		t.Errorf("histogram count = %v, want 1000", count)
	}
}
