package native

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
	"github.com/chroma-sdk/chroma-go/pkg/log"
)

// Backend is the in-process implementation of the Backend contract.
// It adds the lifecycle state machine on top of a Library and makes the
// disposed backend inert.
type Backend struct {
	lib    Library
	logger log.Logger

	mu          sync.Mutex
	initialized bool
	disposed    bool
}

// Config configures a native backend.
type Config struct {
	// Library is the SDK function table. Required.
	Library Library

	// Logger receives protocol events. Defaults to log.NoopLogger.
	Logger log.Logger
}

// New creates an uninitialized native backend.
func New(cfg Config) *Backend {
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}
	return &Backend{lib: cfg.Library, logger: cfg.Logger}
}

// Initialize registers the application with the SDK runtime.
func (b *Backend) Initialize(ctx context.Context, app backend.AppInfo) error {
	if err := app.Validate(); err != nil {
		return &backend.InitError{Reason: err.Error()}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed || b.initialized {
		return fmt.Errorf("initialize: %w", backend.ErrInvalidState)
	}
	if err := b.lib.Init(app); err != nil {
		return &backend.InitError{Err: err}
	}
	b.initialized = true

	b.logger.Log(log.Event{
		Time:     time.Now(),
		Kind:     log.KindStateChange,
		Message:  "sdk initialized",
		NewState: "active",
	})
	return nil
}

// Uninitialize releases the SDK runtime. A second call after a successful
// teardown is a no-op.
func (b *Backend) Uninitialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return nil
	}
	if !b.initialized {
		return fmt.Errorf("uninitialize: %w", backend.ErrInvalidState)
	}
	if err := b.lib.UnInit(); err != nil {
		return err
	}
	b.initialized = false
	b.disposed = true

	b.logger.Log(log.Event{
		Time:     time.Now(),
		Kind:     log.KindStateChange,
		Message:  "sdk uninitialized",
		OldState: "active",
		NewState: "disposed",
	})
	return nil
}

// Close disposes the backend, releasing the runtime best-effort. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return nil
	}
	if b.initialized {
		// Best effort; a failed native teardown must not keep the backend
		// alive.
		_ = b.lib.UnInit()
		b.initialized = false
	}
	b.disposed = true
	return nil
}

// CreateEffect creates an effect through the SDK.
func (b *Backend) CreateEffect(ctx context.Context, category effect.Category, kind effect.Kind, payload any) (effect.ID, error) {
	if err := b.requireActive(ctx); err != nil {
		return effect.Nil, err
	}
	if !category.Valid() {
		return effect.Nil, fmt.Errorf("create effect: unknown category %d: %w", category, backend.ErrInvalidState)
	}
	return b.lib.CreateEffect(category, kind, payload)
}

// SetEffect makes a previously created effect the active one.
func (b *Backend) SetEffect(ctx context.Context, id effect.ID) error {
	if err := b.requireActive(ctx); err != nil {
		return err
	}
	return b.lib.SetEffect(id)
}

// DeleteEffect releases a previously created effect.
func (b *Backend) DeleteEffect(ctx context.Context, id effect.ID) error {
	if err := b.requireActive(ctx); err != nil {
		return err
	}
	return b.lib.DeleteEffect(id)
}

// QueryDevice reports attachment state for a device.
func (b *Backend) QueryDevice(ctx context.Context, deviceID uuid.UUID) (backend.DeviceInfo, error) {
	if err := b.requireActive(ctx); err != nil {
		return backend.DeviceInfo{}, err
	}
	return b.lib.QueryDevice(deviceID)
}

// RegisterEventNotifications subscribes the window handle to SDK events.
func (b *Backend) RegisterEventNotifications(windowHandle uintptr) error {
	if err := b.requireActive(context.Background()); err != nil {
		return err
	}
	return b.lib.RegisterEventNotification(windowHandle)
}

// UnregisterEventNotifications removes the event subscription.
func (b *Backend) UnregisterEventNotifications() error {
	if err := b.requireActive(context.Background()); err != nil {
		return err
	}
	return b.lib.UnregisterEventNotification()
}

// Supports reports the SDK's capability set: everything except the
// control-plane heartbeat, which has no native counterpart.
func (b *Backend) Supports(op backend.Operation) bool {
	return op != backend.OpHeartbeat
}

func (b *Backend) requireActive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed || !b.initialized {
		return fmt.Errorf("sdk not initialized: %w", backend.ErrInvalidState)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ backend.Backend = (*Backend)(nil)
