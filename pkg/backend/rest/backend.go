package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
	"github.com/chroma-sdk/chroma-go/pkg/log"
)

// DefaultEndpoint is the well-known handshake endpoint of the local control
// plane.
const DefaultEndpoint = "http://localhost:54235/razer/chromasdk"

// Config configures a control-plane backend. The zero value selects the
// defaults.
type Config struct {
	// Endpoint is the handshake endpoint. Defaults to DefaultEndpoint.
	Endpoint string

	// HTTPClient is the transport used for all calls. Defaults to a client
	// with a 5 second timeout.
	HTTPClient *http.Client

	// HeartbeatInterval is the keep-alive period. Defaults to
	// DefaultHeartbeatInterval. Shorten only in tests.
	HeartbeatInterval time.Duration

	// Logger receives protocol events. Defaults to log.NoopLogger.
	Logger log.Logger
}

// Backend is the control-plane implementation of the Backend contract.
//
// The session record is immutable and swapped in atomically when the
// handshake succeeds, so effect calls and keep-alive ticks never observe a
// half-updated address. Lifecycle transitions are serialized by a mutex;
// reads of the session are lock-free.
type Backend struct {
	endpoint string
	httpc    *http.Client
	logger   log.Logger

	mu      sync.Mutex
	state   State
	onError func(error)

	session atomic.Pointer[Session]
	hb      *heartbeat
}

// New creates an uninitialized control-plane backend.
func New(cfg Config) *Backend {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}

	b := &Backend{
		endpoint: cfg.Endpoint,
		httpc:    cfg.HTTPClient,
		logger:   cfg.Logger,
	}
	b.hb = newHeartbeat(cfg.HeartbeatInterval, b.sendHeartbeat, b.reportSessionError)
	return b
}

// SetSessionErrorHandler registers the handler that receives background
// session failures, i.e. keep-alive errors that occur off any caller's call
// stack. A failed keep-alive leaves the session in an undefined state; the
// handler should dispose the backend.
func (b *Backend) SetSessionErrorHandler(fn func(error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = fn
}

// State returns the current lifecycle state.
func (b *Backend) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Session returns the active session record, if one is established.
func (b *Backend) Session() (Session, bool) {
	s := b.session.Load()
	if s == nil {
		return Session{}, false
	}
	return *s, true
}

// HeartbeatStats returns a snapshot of keep-alive progress.
func (b *Backend) HeartbeatStats() HeartbeatStats {
	return b.hb.Stats()
}

// Initialize performs the discovery handshake and arms the keep-alive timer.
// On failure the backend returns to the uninitialized state and may be
// initialized again.
func (b *Backend) Initialize(ctx context.Context, app backend.AppInfo) error {
	if err := app.Validate(); err != nil {
		return &backend.InitError{Reason: err.Error()}
	}

	b.mu.Lock()
	if b.state != StateUninitialized {
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("initialize in state %s: %w", state, backend.ErrInvalidState)
	}
	b.state = StateInitializing
	b.mu.Unlock()

	var resp handshakeResponse
	err := b.doJSON(ctx, http.MethodPost, b.endpoint, backend.OpInitialize, newHandshakeRequest(app), &resp)
	if err != nil {
		b.abortInitialize()
		return &backend.InitError{Endpoint: b.endpoint, Err: err}
	}
	if resp.URI == "" {
		b.abortInitialize()
		return &backend.InitError{Endpoint: b.endpoint, Reason: "handshake returned no session address"}
	}

	session := &Session{ID: resp.Session, BaseURL: resp.URI}

	b.mu.Lock()
	if b.state != StateInitializing {
		// Closed while the handshake was in flight.
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("initialize in state %s: %w", state, backend.ErrInvalidState)
	}
	b.session.Store(session)
	b.state = StateActive
	b.hb.Start()
	b.mu.Unlock()

	b.logger.Log(log.Event{
		Time:     time.Now(),
		Kind:     log.KindStateChange,
		Message:  "session established",
		Session:  session.ID,
		OldState: StateInitializing.String(),
		NewState: StateActive.String(),
	})
	return nil
}

func (b *Backend) abortInitialize() {
	b.mu.Lock()
	if b.state == StateInitializing {
		b.state = StateUninitialized
	}
	b.mu.Unlock()
}

// Uninitialize gracefully tears the session down: the teardown request is
// issued first, then the keep-alive timer is stopped and the transport
// released. A second call is a no-op with no network traffic.
func (b *Backend) Uninitialize(ctx context.Context) error {
	b.mu.Lock()
	switch b.state {
	case StateDisposed:
		b.mu.Unlock()
		return nil
	case StateActive:
	default:
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("uninitialize in state %s: %w", state, backend.ErrInvalidState)
	}
	// Claim the teardown before releasing the lock so a concurrent caller
	// cannot issue a second teardown request.
	b.state = StateDisposed
	session := b.session.Load()
	b.mu.Unlock()

	var resp resultResponse
	err := b.doJSON(ctx, http.MethodDelete, session.BaseURL+"/", backend.OpUninitialize, nil, &resp)

	b.hb.Stop()
	b.session.Store(nil)
	b.httpc.CloseIdleConnections()

	b.logger.Log(log.Event{
		Time:     time.Now(),
		Kind:     log.KindStateChange,
		Message:  "session closed",
		Session:  session.ID,
		OldState: StateActive.String(),
		NewState: StateDisposed.String(),
	})

	if err != nil {
		return err
	}
	if !resp.Result {
		return &backend.CallError{Endpoint: session.BaseURL + "/", Op: backend.OpUninitialize, HTTPStatus: http.StatusOK, Result: 1}
	}
	return nil
}

// Close disposes the backend without a network round trip, tolerating an
// orphaned session on the control-plane side. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	if b.state == StateDisposed {
		b.mu.Unlock()
		return nil
	}
	old := b.state
	b.state = StateDisposed
	b.mu.Unlock()

	b.hb.Stop()
	b.session.Store(nil)
	b.httpc.CloseIdleConnections()

	b.logger.Log(log.Event{
		Time:     time.Now(),
		Kind:     log.KindStateChange,
		Message:  "backend disposed",
		OldState: old.String(),
		NewState: StateDisposed.String(),
	})
	return nil
}

// CreateEffect creates an effect on the given category's endpoint and
// returns the id the control plane assigned to it.
func (b *Backend) CreateEffect(ctx context.Context, category effect.Category, kind effect.Kind, payload any) (effect.ID, error) {
	if !category.Valid() {
		return effect.Nil, fmt.Errorf("create effect: unknown category %d: %w", category, backend.ErrInvalidState)
	}
	session, err := b.activeSession()
	if err != nil {
		return effect.Nil, err
	}

	endpoint := session.BaseURL + "/" + category.String()
	req := createEffectRequest{Effect: kind}
	if payload != nil {
		req.Param = payload
	}

	var resp createEffectResponse
	if err := b.doJSON(ctx, http.MethodPost, endpoint, backend.OpCreateEffect, req, &resp); err != nil {
		return effect.Nil, err
	}
	if !resp.Result {
		return effect.Nil, &backend.CreateError{Endpoint: endpoint, Result: 1, Reason: "backend reported failure"}
	}
	if resp.ID == nil || resp.ID.IsZero() {
		return effect.Nil, &backend.CreateError{Endpoint: endpoint, Reason: "response carries no effect id"}
	}
	return *resp.ID, nil
}

// SetEffect makes a previously created effect the active one.
func (b *Backend) SetEffect(ctx context.Context, id effect.ID) error {
	return b.effectCall(ctx, http.MethodPut, backend.OpSetEffect, id)
}

// DeleteEffect releases a previously created effect.
func (b *Backend) DeleteEffect(ctx context.Context, id effect.ID) error {
	return b.effectCall(ctx, http.MethodDelete, backend.OpDeleteEffect, id)
}

func (b *Backend) effectCall(ctx context.Context, method string, op backend.Operation, id effect.ID) error {
	session, err := b.activeSession()
	if err != nil {
		return err
	}

	endpoint := session.BaseURL + "/effect"
	var resp resultResponse
	if err := b.doJSON(ctx, method, endpoint, op, effectIDRequest{ID: id}, &resp); err != nil {
		return err
	}
	if !resp.Result {
		return &backend.CallError{Endpoint: endpoint, Op: op, HTTPStatus: http.StatusOK, Result: 1}
	}
	return nil
}

// QueryDevice is not part of the control plane's surface.
func (b *Backend) QueryDevice(context.Context, uuid.UUID) (backend.DeviceInfo, error) {
	return backend.DeviceInfo{}, fmt.Errorf("query device: %w", backend.ErrUnsupportedOperation)
}

// RegisterEventNotifications is not part of the control plane's surface.
func (b *Backend) RegisterEventNotifications(uintptr) error {
	return fmt.Errorf("register event notifications: %w", backend.ErrUnsupportedOperation)
}

// UnregisterEventNotifications is not part of the control plane's surface.
func (b *Backend) UnregisterEventNotifications() error {
	return fmt.Errorf("unregister event notifications: %w", backend.ErrUnsupportedOperation)
}

// Supports reports the control plane's capability set: session and effect
// calls yes, device query and event registration never.
func (b *Backend) Supports(op backend.Operation) bool {
	switch op {
	case backend.OpQueryDevice, backend.OpEventNotifications:
		return false
	default:
		return true
	}
}

// activeSession returns the published session record or ErrInvalidState when
// no session is active.
func (b *Backend) activeSession() (Session, error) {
	s := b.session.Load()
	if s == nil {
		return Session{}, fmt.Errorf("no active session: %w", backend.ErrInvalidState)
	}
	return *s, nil
}

// sendHeartbeat issues one keep-alive call. Runs on the heartbeat goroutine.
func (b *Backend) sendHeartbeat(ctx context.Context) (int64, error) {
	session, err := b.activeSession()
	if err != nil {
		return 0, err
	}

	endpoint := session.BaseURL + "/heartbeat"
	var resp heartbeatResponse
	if err := b.doJSON(ctx, http.MethodPut, endpoint, backend.OpHeartbeat, nil, &resp); err != nil {
		return 0, err
	}

	b.logger.Log(log.Event{
		Time:     time.Now(),
		Kind:     log.KindHeartbeat,
		Message:  "heartbeat",
		Endpoint: endpoint,
		Session:  session.ID,
	})
	return resp.Tick, nil
}

// reportSessionError routes a background session failure to the registered
// handler and the logger. Never drops it.
func (b *Backend) reportSessionError(err error) {
	b.logger.Log(log.Event{
		Time:    time.Now(),
		Kind:    log.KindError,
		Message: "session keep-alive failed",
		Err:     err,
	})

	b.mu.Lock()
	fn := b.onError
	b.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// doJSON performs one JSON round trip. A non-2xx status is a transport-level
// failure and yields a CallError carrying the status; the logical result in
// the body is the caller's to check.
func (b *Backend) doJSON(ctx context.Context, method, endpoint string, op backend.Operation, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &backend.CallError{Endpoint: endpoint, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpc.Do(req)
	if err != nil {
		return &backend.CallError{Endpoint: endpoint, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &backend.CallError{Endpoint: endpoint, Op: op, HTTPStatus: resp.StatusCode}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &backend.CallError{Endpoint: endpoint, Op: op, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ backend.Backend = (*Backend)(nil)
