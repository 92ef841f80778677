package cycle

import (
	"context"
	"time"

	"github.com/safelabs/sentinel-node/internal/domain"
	"github.com/safelabs/sentinel-node/internal/ports"
)

// Runner executes one full sample → build → dispatch sequence. No step
// may abort it: sensor failures sentinel, connectivity failures skip,
// write failures fail the outcome, and the next cycle always runs.
type Runner struct {
	reader     ports.SensorReader
	conn       ports.Connectivity
	dispatcher *Dispatcher
	obs        ports.Observability
	deviceID   string
	start      time.Time
}

func NewRunner(reader ports.SensorReader, conn ports.Connectivity, dispatcher *Dispatcher, obs ports.Observability, deviceID string, start time.Time) *Runner {
	return &Runner{
		reader:     reader,
		conn:       conn,
		dispatcher: dispatcher,
		obs:        obs,
		deviceID:   deviceID,
		start:      start,
	}
}

func (r *Runner) Run(ctx context.Context, now time.Time) domain.Outcome {
	r.obs.IncCounter("sentinel_cycles_total", 1)

	state := r.conn.EnsureReady(ctx)

	set := r.reader.Sample(ctx)
	rec := domain.BuildRecord(set, r.deviceID, int64(now.Sub(r.start)/time.Second))

	r.obs.SetGauge("air_temperature_celsius", rec.Temperature.Value)
	r.obs.SetGauge("air_humidity_percent", rec.Humidity.Value)
	r.obs.SetGauge("air_gas_ppm", rec.Gas.Value)
	r.obs.SetGauge("air_motion_detected", rec.Motion.Value)

	outcome := r.dispatcher.Dispatch(ctx, rec)

	r.obs.LogInfo("cycle_complete",
		ports.Field{Key: "state", Value: state.String()},
		ports.Field{Key: "timestamp", Value: rec.Timestamp},
		ports.Field{Key: "temperature_c", Value: rec.Temperature.Value},
		ports.Field{Key: "temperature_valid", Value: rec.Temperature.Valid},
		ports.Field{Key: "humidity_pct", Value: rec.Humidity.Value},
		ports.Field{Key: "humidity_valid", Value: rec.Humidity.Valid},
		ports.Field{Key: "gas_ppm", Value: rec.Gas.Value},
		ports.Field{Key: "motion", Value: rec.Motion.Detected()},
		ports.Field{Key: "outcome", Value: outcome.String()})

	return outcome
}
