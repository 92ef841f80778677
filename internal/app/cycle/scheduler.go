package cycle

import "time"

// Scheduler gates cycles at a fixed cadence. The interval is measured
// from the last actual run, not from a fixed grid, so long cycles push
// the next one out rather than bunching up. Single-goroutine use only;
// a cycle cannot overlap the next because Tick runs it inline.
type Scheduler struct {
	interval time.Duration
	lastRun  time.Time
}

// NewScheduler seeds lastRun with start, so the first cycle fires one
// interval after boot.
func NewScheduler(interval time.Duration, start time.Time) *Scheduler {
	return &Scheduler{interval: interval, lastRun: start}
}

// Tick runs fn exactly once when the interval has elapsed and reports
// whether it did. Below the interval it performs no work.
func (s *Scheduler) Tick(now time.Time, fn func()) bool {
	if now.Sub(s.lastRun) < s.interval {
		return false
	}
	s.lastRun = now
	fn()
	return true
}

// LastRun reports when the previous cycle started.
func (s *Scheduler) LastRun() time.Time {
	return s.lastRun
}
