package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromObsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewPromObs(reg)

	obs.IncCounter("sentinel_records_sent_total", 3)
	if got := testutil.ToFloat64(obs.counters["sentinel_records_sent_total"]); got != 3 {
		t.Fatalf("expected sent counter 3, got %f", got)
	}

	obs.IncCounter("sentinel_sensor_read_failures_total", 1)
	if got := testutil.ToFloat64(obs.counters["sentinel_sensor_read_failures_total"]); got != 1 {
		t.Fatalf("expected sensor failure counter 1, got %f", got)
	}

	obs.SetGauge("air_temperature_celsius", 21.5)
	if got := testutil.ToFloat64(obs.gauges["air_temperature_celsius"]); got != 21.5 {
		t.Fatalf("expected temperature gauge 21.5, got %f", got)
	}

	obs.ObserveLatency("sentinel_dispatch_latency_seconds", 0.25)
	hCollector := obs.histos["sentinel_dispatch_latency_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected latency histogram to record 1 sample, got %d", samples)
	}
}

func TestPromObsIgnoresUnknownNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewPromObs(reg)

	// Unknown metric names are dropped, not panicked on.
	obs.IncCounter("no_such_counter", 1)
	obs.SetGauge("no_such_gauge", 1)
	obs.ObserveLatency("no_such_histogram", 1)
}
