package ports

import "context"

// Link is the wireless interface the node rides on. The association
// protocol itself is the driver's business; the manager only starts
// association and observes link status. Implementations own their
// credentials and should keep reconnecting on their own once
// associated.
type Link interface {
	// Associate begins association. It returns once association has
	// been initiated, not once the link is up; poll Up for that.
	Associate(ctx context.Context) error

	// Up reports whether the link currently carries traffic.
	Up() bool
}
