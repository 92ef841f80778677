package ports

import (
	"context"

	"github.com/safelabs/sentinel-node/internal/domain"
)

// Store is the remote real-time data store. Every successful cycle
// writes the same payload to two locations: the latest slot, which is
// overwritten each time, and the append-only history keyed by the
// record timestamp.
type Store interface {
	// Open establishes the authenticated session. Idempotent: calling
	// it again on an open session is a no-op.
	Open(ctx context.Context) error

	// PutLatest overwrites the latest slot for the record's device.
	PutLatest(ctx context.Context, rec domain.Record) error

	// PutHistory appends one history entry keyed by the record
	// timestamp.
	PutHistory(ctx context.Context, rec domain.Record) error

	Name() string
}

// Connectivity drives and exposes the link/session state machine.
type Connectivity interface {
	// EnsureReady advances the state machine as far toward
	// SessionReady as the link allows. Failures are absorbed; the next
	// cycle retries.
	EnsureReady(ctx context.Context) domain.ConnectivityState

	State() domain.ConnectivityState
}
