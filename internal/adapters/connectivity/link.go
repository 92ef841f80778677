package connectivity

import (
	"context"
	"net"
	"sync"

	"github.com/safelabs/sentinel-node/internal/ports"
)

// ManagedLink models a wireless interface whose association is handled
// by the host OS (wpa_supplicant, NetworkManager). The supplicant owns
// the credentials and reconnects on its own as a standing policy, so
// Associate is a no-op; Up observes whether any interface actually
// carries a routable address.
type ManagedLink struct{}

func (ManagedLink) Associate(_ context.Context) error { return nil }

func (ManagedLink) Up() bool {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return false
	}
	for _, addr := range addrs {
		ip, ok := addr.(*net.IPNet)
		if ok && !ip.IP.IsLoopback() && ip.IP.To4() != nil {
			return true
		}
	}
	return false
}

// SimLink is a controllable link for tests and simulation.
type SimLink struct {
	mu         sync.Mutex
	up         bool
	associated bool
	err        error
}

func NewSimLink(up bool) *SimLink {
	return &SimLink{up: up}
}

// SetUp flips the simulated carrier.
func (l *SimLink) SetUp(up bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.up = up
}

// FailAssociation makes Associate return err until cleared.
func (l *SimLink) FailAssociation(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

func (l *SimLink) Associate(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.associated = true
	return nil
}

func (l *SimLink) Up() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.associated && l.up
}

var (
	_ ports.Link = ManagedLink{}
	_ ports.Link = (*SimLink)(nil)
)
