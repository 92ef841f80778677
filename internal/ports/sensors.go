package ports

import (
	"context"

	"github.com/safelabs/sentinel-node/internal/domain"
)

// SensorReader produces one validated sample set per call. Stateless
// between calls.
type SensorReader interface {
	Sample(ctx context.Context) domain.SampleSet
}

// ThermoHygrometer is a coupled temperature/humidity sensor. One read
// yields both values; a failed read invalidates both together, never
// independently.
type ThermoHygrometer interface {
	// Sense returns temperature in degrees Celsius and relative
	// humidity in percent.
	Sense(ctx context.Context) (tempC, rhPct float64, err error)
}

// AnalogReader is a fixed-resolution analog input. Implementations
// always return an in-range raw value; hardware faults degrade to the
// low end of the domain rather than erroring.
type AnalogReader interface {
	ReadRaw(ctx context.Context) int
}

// MotionDetector reports the instantaneous state of a digital presence
// pin. No debouncing or temporal filtering.
type MotionDetector interface {
	Detect(ctx context.Context) bool
}
