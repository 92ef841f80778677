package cycle

import (
	"testing"
	"time"
)

func TestTickBelowIntervalDoesNothing(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewScheduler(30*time.Second, start)

	ran := false
	if s.Tick(start.Add(29*time.Second), func() { ran = true }) {
		t.Fatalf("tick below interval should report no work")
	}
	if ran {
		t.Fatalf("tick below interval must not run the cycle")
	}
	if got := s.LastRun(); !got.Equal(start) {
		t.Fatalf("lastRun must not move on an idle tick, got %s", got)
	}
}

func TestTickRunsExactlyOnceWhenDue(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewScheduler(30*time.Second, start)

	runs := 0
	due := start.Add(30 * time.Second)
	if !s.Tick(due, func() { runs++ }) {
		t.Fatalf("tick at interval should run")
	}
	if runs != 1 {
		t.Fatalf("expected exactly one run, got %d", runs)
	}
	if got := s.LastRun(); !got.Equal(due) {
		t.Fatalf("lastRun should be updated to now, got %s", got)
	}

	// Immediately after a run the gate is closed again.
	if s.Tick(due.Add(time.Second), func() { runs++ }) {
		t.Fatalf("tick right after a run should do nothing")
	}
	if runs != 1 {
		t.Fatalf("expected no extra run, got %d", runs)
	}
}

func TestIntervalMeasuredFromLastRunNotGrid(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewScheduler(30*time.Second, start)

	runs := 0
	// First run lands late, at +45s.
	late := start.Add(45 * time.Second)
	s.Tick(late, func() { runs++ })

	// A grid-based scheduler would fire again at +60s; this one waits
	// until 30s after the late run.
	if s.Tick(start.Add(60*time.Second), func() { runs++ }) {
		t.Fatalf("no drift correction: next run must be a full interval after the last actual run")
	}
	if !s.Tick(late.Add(30*time.Second), func() { runs++ }) {
		t.Fatalf("expected run one interval after the late run")
	}
	if runs != 2 {
		t.Fatalf("expected two runs, got %d", runs)
	}
}
