package cycle

import (
	"context"
	"time"

	"github.com/safelabs/sentinel-node/internal/domain"
	"github.com/safelabs/sentinel-node/internal/ports"
)

// Dispatcher pushes one record to the store's latest slot and history
// entry. The latest write decides the outcome; the history write is
// best-effort and only surfaces as a diagnostic.
type Dispatcher struct {
	store ports.Store
	conn  ports.Connectivity
	obs   ports.Observability
}

func NewDispatcher(store ports.Store, conn ports.Connectivity, obs ports.Observability) *Dispatcher {
	return &Dispatcher{store: store, conn: conn, obs: obs}
}

// Dispatch returns Skipped without touching the network whenever the
// session is not ready; that is the expected steady state while
// reconnection proceeds. There is no in-cycle retry - the next
// scheduled cycle is the retry mechanism.
func (d *Dispatcher) Dispatch(ctx context.Context, rec domain.Record) domain.Outcome {
	if state := d.conn.State(); state != domain.SessionReady {
		d.obs.IncCounter("sentinel_records_skipped_total", 1)
		return domain.SkippedOutcome("not ready")
	}

	start := time.Now()
	if err := d.store.PutLatest(ctx, rec); err != nil {
		d.obs.LogError("latest_write_failed", err,
			ports.Field{Key: "store", Value: d.store.Name()},
			ports.Field{Key: "device", Value: rec.DeviceID})
		d.obs.IncCounter("sentinel_records_failed_total", 1)
		return domain.FailedOutcome(err.Error())
	}
	d.obs.ObserveLatency("sentinel_dispatch_latency_seconds", time.Since(start).Seconds())

	if err := d.store.PutHistory(ctx, rec); err != nil {
		// Outcome is already decided by the latest write.
		d.obs.LogError("history_write_failed", err,
			ports.Field{Key: "device", Value: rec.DeviceID},
			ports.Field{Key: "timestamp", Value: rec.Timestamp})
	}

	d.obs.IncCounter("sentinel_records_sent_total", 1)
	return domain.SentOutcome()
}
