package log

import "time"

// EventKind classifies a logged event.
type EventKind uint8

// Event kinds.
const (
	// KindStateChange records a backend lifecycle transition.
	KindStateChange EventKind = iota

	// KindRequest records a completed wire request.
	KindRequest

	// KindHeartbeat records a keep-alive tick.
	KindHeartbeat

	// KindError records a failure, foreground or background.
	KindError
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case KindStateChange:
		return "state_change"
	case KindRequest:
		return "request"
	case KindHeartbeat:
		return "heartbeat"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a single protocol event.
type Event struct {
	// Time is when the event occurred.
	Time time.Time

	// Kind classifies the event.
	Kind EventKind

	// Message is a short human-readable description.
	Message string

	// Endpoint is the wire endpoint involved, if any.
	Endpoint string

	// OldState and NewState are set for state-change events.
	OldState string
	NewState string

	// Session is the session identifier, if one is established.
	Session int64

	// Err is the failure for error events.
	Err error
}
