package sensors

import (
	"context"
	"errors"
	"sync"

	"github.com/safelabs/sentinel-node/internal/ports"
)

// ErrSimReadFailure is returned by a simulated coupled read forced to
// fail.
var ErrSimReadFailure = errors.New("simulated thermo-hygro read failure")

// SimThermoHygrometer is a deterministic stand-in for the coupled
// temperature/humidity sensor.
type SimThermoHygrometer struct {
	mu   sync.Mutex
	temp float64
	hum  float64
	fail bool
}

func NewSimThermoHygrometer(tempC, rhPct float64) *SimThermoHygrometer {
	return &SimThermoHygrometer{temp: tempC, hum: rhPct}
}

// SetFailing forces subsequent reads to fail atomically.
func (s *SimThermoHygrometer) SetFailing(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *SimThermoHygrometer) Set(tempC, rhPct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp, s.hum = tempC, rhPct
}

func (s *SimThermoHygrometer) Sense(_ context.Context) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, 0, ErrSimReadFailure
	}
	return s.temp, s.hum, nil
}

// SimAnalog is a fixed-value analog input.
type SimAnalog struct {
	mu  sync.Mutex
	raw int
}

func NewSimAnalog(raw int) *SimAnalog {
	return &SimAnalog{raw: raw}
}

func (s *SimAnalog) Set(raw int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
}

func (s *SimAnalog) ReadRaw(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// SimMotion is a fixed-state presence pin.
type SimMotion struct {
	mu      sync.Mutex
	present bool
}

func NewSimMotion(present bool) *SimMotion {
	return &SimMotion{present: present}
}

func (s *SimMotion) Set(present bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.present = present
}

func (s *SimMotion) Detect(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.present
}

var (
	_ ports.ThermoHygrometer = (*SimThermoHygrometer)(nil)
	_ ports.AnalogReader     = (*SimAnalog)(nil)
	_ ports.MotionDetector   = (*SimMotion)(nil)
)
