package domain

import "testing"

func TestBuildRecordFoldsInvalidToSentinel(t *testing.T) {
	set := SampleSet{
		Temperature: Measurement{Value: 23.4, Valid: false},
		Humidity:    InvalidMeasurement(KindHumidity),
		Gas:         NewMeasurement(KindGas, 512.5),
		Motion:      BoolMeasurement(KindMotion, true),
	}

	rec := BuildRecord(set, "node-1", 120)

	if rec.Temperature.Valid || rec.Temperature.Value != Sentinel {
		t.Fatalf("invalid temperature should carry sentinel, got %+v", rec.Temperature)
	}
	if rec.Humidity.Valid || rec.Humidity.Value != Sentinel {
		t.Fatalf("invalid humidity should carry sentinel, got %+v", rec.Humidity)
	}
	if !rec.Gas.Valid || rec.Gas.Value != 512.5 {
		t.Fatalf("gas should survive untouched, got %+v", rec.Gas)
	}
	if !rec.Motion.Detected() {
		t.Fatalf("motion should report detected")
	}
}

func TestBuildRecordAssignsKinds(t *testing.T) {
	rec := BuildRecord(SampleSet{}, "node-1", 0)

	if rec.Temperature.Kind != KindTemperature ||
		rec.Humidity.Kind != KindHumidity ||
		rec.Gas.Kind != KindGas ||
		rec.Motion.Kind != KindMotion {
		t.Fatalf("record should carry one measurement per kind, got %+v", rec)
	}
}

func TestRecordPayload(t *testing.T) {
	set := SampleSet{
		Temperature: NewMeasurement(KindTemperature, 22.1),
		Humidity:    NewMeasurement(KindHumidity, 48.9),
		Gas:         NewMeasurement(KindGas, 333.3),
		Motion:      BoolMeasurement(KindMotion, true),
	}

	p := BuildRecord(set, "sensor_node_01", 777).Payload()

	if p.Timestamp != 777 {
		t.Fatalf("expected timestamp 777, got %d", p.Timestamp)
	}
	if p.Temperature != 22.1 || p.Humidity != 48.9 || p.GasPPM != 333.3 {
		t.Fatalf("unexpected payload values: %+v", p)
	}
	if !p.MotionDetected {
		t.Fatalf("expected motion_detected true")
	}
	if p.DeviceID != "sensor_node_01" {
		t.Fatalf("expected device id sensor_node_01, got %s", p.DeviceID)
	}
}

func TestDetectedRequiresValid(t *testing.T) {
	m := Measurement{Kind: KindMotion, Value: 1, Valid: false}
	if m.Detected() {
		t.Fatalf("invalid measurement must not report presence")
	}
}
