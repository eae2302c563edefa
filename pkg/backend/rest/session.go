package rest

// State is the lifecycle state of a control-plane backend.
type State uint8

// Lifecycle states.
const (
	// StateUninitialized is the state before Initialize is called and after
	// a failed handshake.
	StateUninitialized State = iota

	// StateInitializing covers the handshake round trip.
	StateInitializing

	// StateActive means a session is established and the keep-alive timer
	// is armed.
	StateActive

	// StateDisposed is terminal; no further calls are attempted.
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateActive:
		return "active"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Session is the record published when a handshake succeeds. It is immutable;
// the backend swaps the whole record in atomically so no reader ever observes
// a half-updated address.
type Session struct {
	// ID is the session identifier assigned by the control plane.
	ID int64

	// BaseURL is the discovered base address all subsequent calls target.
	BaseURL string
}
