package sensors

import (
	"context"

	"github.com/safelabs/sentinel-node/internal/domain"
	"github.com/safelabs/sentinel-node/internal/ports"
)

// GasCalibration maps the raw analog domain onto application ppm.
type GasCalibration struct {
	RawMin int
	RawMax int
	PPMMin float64
	PPMMax float64
}

// DefaultGasCalibration matches a 12-bit ADC mapped onto 200-1000 ppm.
var DefaultGasCalibration = GasCalibration{
	RawMin: 0,
	RawMax: 4095,
	PPMMin: 200,
	PPMMax: 1000,
}

// Rescale linearly maps a raw reading onto the ppm range, clamping the
// input to the declared domain first. Monotonic in raw.
func (c GasCalibration) Rescale(raw int) float64 {
	if raw < c.RawMin {
		raw = c.RawMin
	}
	if raw > c.RawMax {
		raw = c.RawMax
	}
	span := float64(c.RawMax - c.RawMin)
	if span == 0 {
		return c.PPMMin
	}
	return c.PPMMin + float64(raw-c.RawMin)*(c.PPMMax-c.PPMMin)/span
}

// Reader wraps the three driver ports into validated measurements. It
// retains no state between calls; a failed coupled read invalidates
// temperature and humidity together and sampling continues with the
// remaining sensors.
type Reader struct {
	thermo ports.ThermoHygrometer
	gas    ports.AnalogReader
	motion ports.MotionDetector
	cal    GasCalibration
	obs    ports.Observability
}

func NewReader(thermo ports.ThermoHygrometer, gas ports.AnalogReader, motion ports.MotionDetector, cal GasCalibration, obs ports.Observability) *Reader {
	return &Reader{
		thermo: thermo,
		gas:    gas,
		motion: motion,
		cal:    cal,
		obs:    obs,
	}
}

func (r *Reader) Sample(ctx context.Context) domain.SampleSet {
	var set domain.SampleSet

	tempC, rhPct, err := r.thermo.Sense(ctx)
	if err != nil {
		r.obs.LogError("thermo_hygro_read_failed", err)
		r.obs.IncCounter("sentinel_sensor_read_failures_total", 1)
		set.Temperature = domain.InvalidMeasurement(domain.KindTemperature)
		set.Humidity = domain.InvalidMeasurement(domain.KindHumidity)
	} else {
		set.Temperature = domain.NewMeasurement(domain.KindTemperature, tempC)
		set.Humidity = domain.NewMeasurement(domain.KindHumidity, rhPct)
	}

	set.Gas = domain.NewMeasurement(domain.KindGas, r.cal.Rescale(r.gas.ReadRaw(ctx)))
	set.Motion = domain.BoolMeasurement(domain.KindMotion, r.motion.Detect(ctx))

	return set
}

var _ ports.SensorReader = (*Reader)(nil)
