package connectivity

import (
	"context"
	"fmt"
	"time"

	"github.com/safelabs/sentinel-node/internal/domain"
	"github.com/safelabs/sentinel-node/internal/ports"
)

const (
	defaultMaxAttempts  = 20
	defaultPollInterval = 500 * time.Millisecond
)

// Manager owns the connectivity state machine. It is the only writer
// of the state; everything else reads it through the Connectivity
// port. Failures never escape: a cycle that cannot get the link up
// simply leaves the state at Disconnected for the next cycle to retry.
type Manager struct {
	link  ports.Link
	store ports.Store
	obs   ports.Observability

	// MaxAttempts and PollInterval bound the link-status polling loop
	// so EnsureReady never blocks indefinitely (~10s at defaults).
	MaxAttempts  int
	PollInterval time.Duration

	state domain.ConnectivityState
}

func NewManager(link ports.Link, store ports.Store, obs ports.Observability) *Manager {
	return &Manager{
		link:         link,
		store:        store,
		obs:          obs,
		MaxAttempts:  defaultMaxAttempts,
		PollInterval: defaultPollInterval,
		state:        domain.Disconnected,
	}
}

func (m *Manager) State() domain.ConnectivityState {
	return m.state
}

// EnsureReady advances the state machine as far toward SessionReady as
// the link allows. A link observed down demotes the state first, so a
// stale session is never used after a drop.
func (m *Manager) EnsureReady(ctx context.Context) domain.ConnectivityState {
	if m.state >= domain.Connected && !m.link.Up() {
		m.obs.LogError("link_dropped", fmt.Errorf("link down in state %s", m.state))
		m.state = domain.Disconnected
	}

	if m.state == domain.Disconnected {
		m.ensureLink(ctx)
	}
	if m.state == domain.Connected {
		m.ensureSession(ctx)
	}
	return m.state
}

func (m *Manager) ensureLink(ctx context.Context) {
	m.state = domain.Connecting
	if err := m.link.Associate(ctx); err != nil {
		m.obs.LogError("link_associate_failed", err)
		m.state = domain.Disconnected
		return
	}

	for attempt := 0; attempt < m.MaxAttempts; attempt++ {
		if m.link.Up() {
			m.state = domain.Connected
			m.obs.LogInfo("link_up", ports.Field{Key: "attempts", Value: attempt + 1})
			return
		}
		select {
		case <-ctx.Done():
			m.state = domain.Disconnected
			return
		case <-time.After(m.PollInterval):
		}
	}

	m.state = domain.Disconnected
	m.obs.LogError("link_timeout", fmt.Errorf("link not up after %d attempts", m.MaxAttempts))
}

// ensureSession opens the store session once per link connection. The
// store's Open is idempotent, and SessionReady short-circuits here, so
// repeated calls are no-ops.
func (m *Manager) ensureSession(ctx context.Context) {
	if m.state == domain.SessionReady {
		return
	}
	if err := m.store.Open(ctx); err != nil {
		m.obs.LogError("session_open_failed", err)
		return
	}
	m.state = domain.SessionReady
	m.obs.LogInfo("session_ready", ports.Field{Key: "store", Value: m.store.Name()})
}

var _ ports.Connectivity = (*Manager)(nil)
