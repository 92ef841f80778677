package ports

import "time"

// Clock is the scheduler's time base. Record timestamps are derived
// from it relative to node start, so any monotonic source works.
type Clock interface {
	Now() time.Time
}
