package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/safelabs/sentinel-node/internal/ports"
)

// PromObs implements the observability port with Prometheus metrics
// and logrus structured logging.
type PromObs struct {
	logger   *log.Logger
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

// NewPromObs registers the node's metrics with reg; a nil registerer
// uses the default registry.
func NewPromObs(reg prometheus.Registerer) *PromObs {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	cycles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_cycles_total",
		Help: "Total sample/build/dispatch cycles run.",
	})
	sent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_records_sent_total",
		Help: "Records whose latest-slot write succeeded.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_records_skipped_total",
		Help: "Records skipped because the session was not ready.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_records_failed_total",
		Help: "Records whose latest-slot write failed.",
	})
	sensorFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_sensor_read_failures_total",
		Help: "Coupled thermo-hygro reads that failed and were sentineled.",
	})

	temperature := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "air_temperature_celsius",
		Help: "Last sampled air temperature (units: degrees Celsius).",
	})
	humidity := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "air_humidity_percent",
		Help: "Last sampled relative humidity (units: %).",
	})
	gas := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "air_gas_ppm",
		Help: "Last sampled gas concentration (units: ppm).",
	})
	motion := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "air_motion_detected",
		Help: "Last sampled motion presence (1 = detected).",
	})

	dispatchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentinel_dispatch_latency_seconds",
		Help:    "Latency of the latest-slot write.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	reg.MustRegister(cycles, sent, skipped, failed, sensorFailures,
		temperature, humidity, gas, motion, dispatchLatency)

	return &PromObs{
		logger: log.StandardLogger(),
		counters: map[string]prometheus.Counter{
			"sentinel_cycles_total":               cycles,
			"sentinel_records_sent_total":         sent,
			"sentinel_records_skipped_total":      skipped,
			"sentinel_records_failed_total":       failed,
			"sentinel_sensor_read_failures_total": sensorFailures,
		},
		gauges: map[string]prometheus.Gauge{
			"air_temperature_celsius": temperature,
			"air_humidity_percent":    humidity,
			"air_gas_ppm":             gas,
			"air_motion_detected":     motion,
		},
		histos: map[string]prometheus.Observer{
			"sentinel_dispatch_latency_seconds": dispatchLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	p.logger.WithFields(toLogrus(fields)).Info(msg)
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	entry := p.logger.WithFields(toLogrus(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func toLogrus(fields []ports.Field) log.Fields {
	if len(fields) == 0 {
		return nil
	}
	out := make(log.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

var _ ports.Observability = (*PromObs)(nil)
