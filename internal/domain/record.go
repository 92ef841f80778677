package domain

// Record is the complete snapshot produced by one cycle. It is built
// once, never mutated, and discarded after dispatch regardless of the
// outcome; there is no retry buffer.
type Record struct {
	DeviceID    string
	Timestamp   int64 // seconds since node start, no wall-clock source exists
	Temperature Measurement
	Humidity    Measurement
	Gas         Measurement
	Motion      Measurement
}

// BuildRecord assembles a well-formed record from a sample set. Pure
// function: invalid measurements are folded into the sentinel value,
// never rejected, so partial sensor failure cannot block a sync of the
// remaining data.
func BuildRecord(set SampleSet, deviceID string, nowSeconds int64) Record {
	return Record{
		DeviceID:    deviceID,
		Timestamp:   nowSeconds,
		Temperature: fold(set.Temperature, KindTemperature),
		Humidity:    fold(set.Humidity, KindHumidity),
		Gas:         fold(set.Gas, KindGas),
		Motion:      fold(set.Motion, KindMotion),
	}
}

func fold(m Measurement, kind Kind) Measurement {
	m.Kind = kind
	if !m.Valid {
		m.Value = Sentinel
	}
	return m
}

// Payload is the wire form written to both the latest slot and the
// history entry. All six fields are required by the remote schema.
type Payload struct {
	Timestamp      int64   `json:"timestamp"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	GasPPM         float64 `json:"gas_ppm"`
	MotionDetected bool    `json:"motion_detected"`
	DeviceID       string  `json:"device_id"`
}

// Payload serializes the record into its remote-store form.
func (r Record) Payload() Payload {
	return Payload{
		Timestamp:      r.Timestamp,
		Temperature:    r.Temperature.Value,
		Humidity:       r.Humidity.Value,
		GasPPM:         r.Gas.Value,
		MotionDetected: r.Motion.Detected(),
		DeviceID:       r.DeviceID,
	}
}
