package cycle

import (
	"context"
	"testing"
	"time"

	"github.com/safelabs/sentinel-node/internal/adapters/sensors"
	"github.com/safelabs/sentinel-node/internal/domain"
)

func TestRunnerDispatchesDespiteCoupledSensorFailure(t *testing.T) {
	thermo := sensors.NewSimThermoHygrometer(22, 45)
	thermo.SetFailing(true)
	obs := newMockObs()
	reader := sensors.NewReader(thermo, sensors.NewSimAnalog(4095), sensors.NewSimMotion(true), sensors.DefaultGasCalibration, obs)

	store := &mockStore{}
	conn := &staticConn{state: domain.SessionReady}
	runner := NewRunner(reader, conn, NewDispatcher(store, conn, obs), obs, "node-1", time.Unix(0, 0))

	out := runner.Run(context.Background(), time.Unix(90, 0))

	if out.Status != domain.OutcomeSent {
		t.Fatalf("partial sensor failure must not block sync, got %+v", out)
	}

	p := store.lastLatest.Payload()
	if p.Temperature != 0 || p.Humidity != 0 {
		t.Fatalf("failed coupled read must sentinel both fields, got %+v", p)
	}
	if p.GasPPM != 1000 || !p.MotionDetected {
		t.Fatalf("remaining sensors should still be sent, got %+v", p)
	}
	if p.Timestamp != 90 {
		t.Fatalf("timestamp should be seconds since start, got %d", p.Timestamp)
	}
}

func TestRunnerSkipsWhenDisconnected(t *testing.T) {
	obs := newMockObs()
	reader := sensors.NewReader(sensors.NewSimThermoHygrometer(22, 45), sensors.NewSimAnalog(0), sensors.NewSimMotion(false), sensors.DefaultGasCalibration, obs)

	store := &mockStore{}
	conn := &staticConn{state: domain.Disconnected}
	runner := NewRunner(reader, conn, NewDispatcher(store, conn, obs), obs, "node-1", time.Unix(0, 0))

	out := runner.Run(context.Background(), time.Unix(30, 0))

	if out.Status != domain.OutcomeSkipped {
		t.Fatalf("expected Skipped while disconnected, got %+v", out)
	}
	if store.latestCalls != 0 || store.historyCalls != 0 {
		t.Fatalf("no writes may be attempted while disconnected")
	}
	if obs.counters["sentinel_cycles_total"] != 1 {
		t.Fatalf("cycle should still be counted, got %f", obs.counters["sentinel_cycles_total"])
	}
}
