package native

import (
	"errors"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// ErrSDKUnavailable is returned when the vendor SDK cannot be loaded on this
// platform.
var ErrSDKUnavailable = errors.New("vendor SDK is not available")

// Result is a native status code. Zero means success.
type Result int64

// Known native status codes.
const (
	ResultSuccess          Result = 0
	ResultNotSupported     Result = 50
	ResultInvalidParameter Result = 87
	ResultServiceNotActive Result = 1062
	ResultNotFound         Result = 1168
	ResultFailed           Result = 2147500037
)

// Library is the vendor SDK's function table. LoadSystemLibrary provides the
// real one on Windows; tests supply fakes.
//
// Implementations report failures as *backend.CallError carrying the native
// entry point name and status code.
type Library interface {
	// Init registers the application with the SDK runtime.
	Init(app backend.AppInfo) error

	// UnInit releases the SDK runtime.
	UnInit() error

	// CreateEffect creates an effect for a device category. The payload must
	// be one of the typed parameter structs from pkg/effect, or nil.
	CreateEffect(category effect.Category, kind effect.Kind, payload any) (effect.ID, error)

	// SetEffect makes a previously created effect the active one.
	SetEffect(id effect.ID) error

	// DeleteEffect releases a previously created effect.
	DeleteEffect(id effect.ID) error

	// QueryDevice reports attachment state for a device.
	QueryDevice(deviceID uuid.UUID) (backend.DeviceInfo, error)

	// RegisterEventNotification subscribes a window handle to SDK events.
	RegisterEventNotification(windowHandle uintptr) error

	// UnregisterEventNotification removes the event subscription.
	UnregisterEventNotification() error
}
