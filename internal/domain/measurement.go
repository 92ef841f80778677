package domain

// Kind identifies one of the physical quantities sampled each cycle.
type Kind string

const (
	KindTemperature Kind = "temperature"
	KindHumidity    Kind = "humidity"
	KindGas         Kind = "gas_concentration"
	KindMotion      Kind = "motion_presence"
)

// Sentinel is the value an invalid measurement contributes to a record.
const Sentinel = 0.0

// Measurement is one validated physical quantity. Motion presence is
// encoded as 0/1 so every kind shares the same shape; use Detected for
// the boolean view.
type Measurement struct {
	Kind  Kind
	Value float64
	Valid bool
}

// NewMeasurement wraps a successful read.
func NewMeasurement(kind Kind, value float64) Measurement {
	return Measurement{Kind: kind, Value: value, Valid: true}
}

// InvalidMeasurement is a failed read: sentinel value, flagged.
func InvalidMeasurement(kind Kind) Measurement {
	return Measurement{Kind: kind, Value: Sentinel, Valid: false}
}

// BoolMeasurement wraps a presence read.
func BoolMeasurement(kind Kind, present bool) Measurement {
	v := 0.0
	if present {
		v = 1.0
	}
	return Measurement{Kind: kind, Value: v, Valid: true}
}

// Detected reports the boolean view of a presence measurement.
func (m Measurement) Detected() bool {
	return m.Valid && m.Value != 0
}

// SampleSet is the raw output of one SensorReader pass, one measurement
// per kind.
type SampleSet struct {
	Temperature Measurement
	Humidity    Measurement
	Gas         Measurement
	Motion      Measurement
}
