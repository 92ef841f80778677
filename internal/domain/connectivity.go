package domain

// ConnectivityState is the single source of truth for whether the node
// may talk to the remote store. Owned exclusively by the connectivity
// manager; dispatch only reads it.
type ConnectivityState int

const (
	Disconnected ConnectivityState = iota
	Connecting
	Connected
	SessionReady
)

func (s ConnectivityState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case SessionReady:
		return "session_ready"
	default:
		return "unknown"
	}
}
