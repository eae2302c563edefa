package backend

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// AppInfo describes the application registering with a backend.
// The control-plane backend sends it in the handshake; the native backend
// passes it to the SDK's init call.
type AppInfo struct {
	// Title is the application name shown in vendor tooling. At most 64 bytes.
	Title string

	// Description is a one-line description. At most 256 bytes.
	Description string

	// Author identifies the developer.
	Author Author

	// SupportedDevices lists the device categories the application drives.
	// Empty means all categories.
	SupportedDevices []effect.Category

	// Gaming marks the application as a game rather than a utility.
	Gaming bool
}

// Author identifies the developer of an application.
type Author struct {
	Name    string
	Contact string
}

// Validate checks the descriptor against the registration limits.
func (a AppInfo) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("app info: title is required")
	}
	if len(a.Title) > 64 {
		return fmt.Errorf("app info: title exceeds 64 bytes")
	}
	if len(a.Description) > 256 {
		return fmt.Errorf("app info: description exceeds 256 bytes")
	}
	for _, c := range a.SupportedDevices {
		if !c.Valid() {
			return fmt.Errorf("app info: unknown device category %d", c)
		}
	}
	return nil
}

// DeviceInfo is the result of a device query on backends that support it.
type DeviceInfo struct {
	// Type is the vendor device-type code.
	Type uint32

	// Connected reports whether the device is currently attached.
	Connected bool
}

// Operation names a capability a backend may or may not support.
type Operation uint8

// Operations.
const (
	OpInitialize Operation = iota
	OpUninitialize
	OpCreateEffect
	OpSetEffect
	OpDeleteEffect
	OpQueryDevice
	OpEventNotifications
	OpHeartbeat
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpInitialize:
		return "initialize"
	case OpUninitialize:
		return "uninitialize"
	case OpCreateEffect:
		return "create-effect"
	case OpSetEffect:
		return "set-effect"
	case OpDeleteEffect:
		return "delete-effect"
	case OpQueryDevice:
		return "query-device"
	case OpEventNotifications:
		return "event-notifications"
	case OpHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Backend is the operation set a device facade is built against.
//
// Lifecycle: Initialize must succeed before any effect call; Uninitialize
// tears the session down gracefully; Close disposes unconditionally without
// a network round trip. Both teardowns are idempotent, and a disposed
// backend never accepts further calls.
type Backend interface {
	// Initialize registers the application and establishes a session.
	// Fails with *InitError if the backend returns no usable session data.
	Initialize(ctx context.Context, app AppInfo) error

	// Uninitialize gracefully tears the session down.
	// Calling it again after a successful teardown is a no-op.
	Uninitialize(ctx context.Context) error

	// CreateEffect creates an effect on the given device category and
	// returns its identifier. The payload is forwarded unchanged; pass nil
	// for kinds that take no parameters.
	CreateEffect(ctx context.Context, category effect.Category, kind effect.Kind, payload any) (effect.ID, error)

	// SetEffect makes a previously created effect the active one.
	SetEffect(ctx context.Context, id effect.ID) error

	// DeleteEffect releases a previously created effect.
	DeleteEffect(ctx context.Context, id effect.ID) error

	// QueryDevice reports attachment state for a device. Backends without
	// this capability fail with ErrUnsupportedOperation unconditionally.
	QueryDevice(ctx context.Context, deviceID uuid.UUID) (DeviceInfo, error)

	// RegisterEventNotifications subscribes the given window handle to
	// hardware events. Same capability rule as QueryDevice.
	RegisterEventNotifications(windowHandle uintptr) error

	// UnregisterEventNotifications removes the event subscription.
	UnregisterEventNotifications() error

	// Supports reports whether the operation is available on this backend.
	// A false result is permanent for the backend's lifetime.
	Supports(op Operation) bool

	// Close disposes the backend without a network round trip. Safe to call
	// repeatedly; after the first call every other operation fails with
	// ErrInvalidState.
	Close() error
}
