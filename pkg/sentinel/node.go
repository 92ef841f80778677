// Package sentinel wires the sensor, connectivity, and store adapters
// into a periodic sampling node and exposes lifecycle hooks for
// embedding it inside any Go service.
package sentinel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safelabs/sentinel-node/internal/adapters/connectivity"
	"github.com/safelabs/sentinel-node/internal/adapters/observability"
	"github.com/safelabs/sentinel-node/internal/adapters/sensors"
	"github.com/safelabs/sentinel-node/internal/adapters/store"
	"github.com/safelabs/sentinel-node/internal/app/config"
	"github.com/safelabs/sentinel-node/internal/app/cycle"
	"github.com/safelabs/sentinel-node/internal/ports"
)

// pollEvery is how often the control loop offers the scheduler a tick.
// Cycles still run at the configured interval; this only bounds the
// gate's resolution.
const pollEvery = 250 * time.Millisecond

// Config re-exports the node configuration for embedders.
type Config = config.Config

// LoadConfig loads and validates YAML from disk.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Option customizes the dependencies used by NodeRuntime.
type Option func(*overrides)

type overrides struct {
	store         ports.Store
	link          ports.Link
	reader        ports.SensorReader
	thermo        ports.ThermoHygrometer
	gas           ports.AnalogReader
	motion        ports.MotionDetector
	observability ports.Observability
	clock         ports.Clock
}

// WithStore injects a custom store so records can sync to any backend.
func WithStore(s ports.Store) Option {
	return func(o *overrides) { o.store = s }
}

// WithLink injects a custom wireless link driver.
func WithLink(l ports.Link) Option {
	return func(o *overrides) { o.link = l }
}

// WithSensorReader replaces the whole sensor layer.
func WithSensorReader(r ports.SensorReader) Option {
	return func(o *overrides) { o.reader = r }
}

// WithDrivers injects individual sensor drivers while keeping the
// default reader logic (validation, rescaling).
func WithDrivers(thermo ports.ThermoHygrometer, gas ports.AnalogReader, motion ports.MotionDetector) Option {
	return func(o *overrides) {
		o.thermo = thermo
		o.gas = gas
		o.motion = motion
	}
}

// WithObservability plugs in a custom metrics/logging backend.
func WithObservability(obs ports.Observability) Option {
	return func(o *overrides) { o.observability = obs }
}

// WithClock overrides the scheduler's time base.
func WithClock(c ports.Clock) Option {
	return func(o *overrides) { o.clock = c }
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NodeRuntime owns the control loop: one goroutine polling the
// scheduler, which runs at most one cycle at a time.
type NodeRuntime struct {
	cfg        *config.Config
	obs        ports.Observability
	conn       *connectivity.Manager
	runner     *cycle.Runner
	sched      *cycle.Scheduler
	clock      ports.Clock
	metricsSrv *http.Server
	db         *sql.DB
	closers    []io.Closer
}

// New bootstraps the default adapters (periph.io or simulated drivers,
// RTDB or Postgres store, managed link, Prometheus observability) and
// applies any overrides.
func New(cfg *config.Config, opts ...Option) (*NodeRuntime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var ov overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}

	obs := ov.observability
	if obs == nil {
		obs = observability.NewPromObs(nil)
	}

	clk := ov.clock
	if clk == nil {
		clk = systemClock{}
	}

	n := &NodeRuntime{cfg: cfg, obs: obs, clock: clk}

	st, err := n.buildStore(ov)
	if err != nil {
		return nil, err
	}

	reader, err := n.buildReader(ov, obs)
	if err != nil {
		return nil, err
	}

	link := ov.link
	if link == nil {
		link = connectivity.ManagedLink{}
	}

	start := clk.Now()
	n.conn = connectivity.NewManager(link, st, obs)
	dispatcher := cycle.NewDispatcher(st, n.conn, obs)
	n.runner = cycle.NewRunner(reader, n.conn, dispatcher, obs, cfg.Device.ID, start)
	n.sched = cycle.NewScheduler(cfg.Sampling.Interval, start)

	return n, nil
}

func (n *NodeRuntime) buildStore(ov overrides) (ports.Store, error) {
	if ov.store != nil {
		return ov.store, nil
	}
	switch n.cfg.Store.Backend {
	case "rtdb":
		return store.NewRTDB(store.RTDBConfig{
			DatabaseURL: n.cfg.Store.RTDB.DatabaseURL,
			Secret:      n.cfg.Store.RTDB.Secret,
			Timeout:     n.cfg.Store.RTDB.Timeout,
		}), nil
	case "postgres":
		db, err := sql.Open("postgres", n.cfg.Store.Postgres.ConnString)
		if err != nil {
			return nil, err
		}
		n.db = db
		return store.NewPostgres(db, n.cfg.Store.Postgres.Table), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", n.cfg.Store.Backend)
	}
}

func (n *NodeRuntime) buildReader(ov overrides, obs ports.Observability) (ports.SensorReader, error) {
	if ov.reader != nil {
		return ov.reader, nil
	}

	cal := sensors.GasCalibration{
		RawMin: n.cfg.Sampling.Gas.RawMin,
		RawMax: n.cfg.Sampling.Gas.RawMax,
		PPMMin: n.cfg.Sampling.Gas.PPMMin,
		PPMMax: n.cfg.Sampling.Gas.PPMMax,
	}

	thermo, gas, motion := ov.thermo, ov.gas, ov.motion
	if thermo == nil || gas == nil || motion == nil {
		if n.cfg.Hardware.Simulated {
			if thermo == nil {
				thermo = sensors.NewSimThermoHygrometer(21.5, 40)
			}
			if gas == nil {
				gas = sensors.NewSimAnalog(1024)
			}
			if motion == nil {
				motion = sensors.NewSimMotion(false)
			}
		} else {
			drivers, err := sensors.OpenPeriph(sensors.PeriphConfig{
				I2CBus:     n.cfg.Hardware.I2CBus,
				ThermoAddr: n.cfg.Hardware.ThermoAddr,
				ADCChannel: n.cfg.Hardware.ADCChannel,
				MotionPin:  n.cfg.Hardware.MotionPin,
			})
			if err != nil {
				return nil, err
			}
			n.closers = append(n.closers, drivers)
			if thermo == nil {
				thermo = drivers.Thermo()
			}
			if gas == nil {
				gas = drivers.Gas()
			}
			if motion == nil {
				motion = drivers.Motion()
			}
		}
	}

	return sensors.NewReader(thermo, gas, motion, cal, obs), nil
}

// Run starts the metrics server and blocks in the control loop until
// the context is cancelled, then shuts down.
func (n *NodeRuntime) Run(ctx context.Context) error {
	n.startMetrics()

	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	n.obs.LogInfo("node_started",
		ports.Field{Key: "device", Value: n.cfg.Device.ID},
		ports.Field{Key: "interval", Value: n.cfg.Sampling.Interval.String()})

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return n.Shutdown(shutdownCtx)
		case <-ticker.C:
			now := n.clock.Now()
			n.sched.Tick(now, func() {
				n.runner.Run(ctx, now)
			})
		}
	}
}

// Shutdown stops the metrics server and releases driver and database
// handles.
func (n *NodeRuntime) Shutdown(ctx context.Context) error {
	var errs []error

	if n.metricsSrv != nil {
		if err := n.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}
	for _, c := range n.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if n.db != nil {
		if err := n.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (n *NodeRuntime) startMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	n.metricsSrv = &http.Server{
		Addr:    n.cfg.Metrics.Addr,
		Handler: mux,
	}

	go func() {
		if err := n.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			n.obs.LogError("metrics_server_exited", err)
		}
	}()
}
