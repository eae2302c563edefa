package chroma_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/internal/chromatest"
	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/backend/rest"
	"github.com/chroma-sdk/chroma-go/pkg/device"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

func testApp() backend.AppInfo {
	return backend.AppInfo{
		Title:       "Integration Suite",
		Description: "End-to-end lighting session tests",
		Author: backend.Author{
			Name:    "chroma-go",
			Contact: "https://github.com/chroma-sdk/chroma-go",
		},
		SupportedDevices: []effect.Category{
			effect.CategoryKeyboard,
			effect.CategoryMouse,
			effect.CategoryLink,
		},
	}
}

// TestE2E_SessionLifecycle walks a full session: handshake, effects on
// several device facades, keep-alive progress, graceful teardown.
func TestE2E_SessionLifecycle(t *testing.T) {
	srv := chromatest.NewServer()
	defer srv.Close()

	b := rest.New(rest.Config{
		Endpoint:          srv.HandshakeEndpoint(),
		HeartbeatInterval: 20 * time.Millisecond,
	})
	defer b.Close()

	ctx := context.Background()
	if err := b.Initialize(ctx, testApp()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, ok := b.Session(); !ok {
		t.Fatal("no session after successful handshake")
	}

	dir := device.NewDirectory(b, device.DirectoryConfig{})
	defer dir.Close()

	// Keyboard: static color, tracked as current effect.
	kb := dir.Keyboard()
	id, err := kb.SetStatic(ctx, effect.Red)
	if err != nil {
		t.Fatalf("keyboard SetStatic failed: %v", err)
	}
	if kb.CurrentEffect() != id {
		t.Errorf("keyboard current effect = %v, want %v", kb.CurrentEffect(), id)
	}
	if fx, ok := srv.LastEffect(); !ok || fx.Category != "keyboard" || fx.Kind != string(effect.KindStatic) {
		t.Errorf("server stored %+v, want keyboard static", fx)
	}

	// Link: one positional write submits the whole buffer once.
	creates := srv.CreateCalls()
	if _, err := dir.Link().SetColor(ctx, 2, effect.Blue); err != nil {
		t.Fatalf("link SetColor failed: %v", err)
	}
	if got := srv.CreateCalls() - creates; got != 1 {
		t.Errorf("link SetColor issued %d create calls, want 1", got)
	}
	if fx, ok := srv.LastEffect(); !ok || fx.Category != "chromalink" {
		t.Errorf("server stored %+v, want chromalink effect", fx)
	}

	// Re-applying and releasing an earlier effect by id.
	if err := kb.Apply(ctx, id); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := kb.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := srv.EffectByID(id.String()); ok {
		t.Error("deleted effect still stored on the server")
	}

	// Keep-alive runs in the background while the session is active.
	deadline := time.After(2 * time.Second)
	for srv.Heartbeats() < 2 {
		select {
		case <-deadline:
			t.Fatal("keep-alive never progressed")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if stats := b.HeartbeatStats(); !stats.Healthy {
		t.Error("keep-alive reported unhealthy during an active session")
	}

	// Capability-gated operations fail locally.
	if _, err := b.QueryDevice(ctx, uuid.New()); !errors.Is(err, backend.ErrUnsupportedOperation) {
		t.Errorf("QueryDevice = %v, want ErrUnsupportedOperation", err)
	}

	if err := b.Uninitialize(ctx); err != nil {
		t.Fatalf("Uninitialize failed: %v", err)
	}
	if got := srv.Teardowns(); got != 1 {
		t.Errorf("teardowns = %d, want 1", got)
	}

	// The keep-alive never outlives the session.
	after := srv.Heartbeats()
	time.Sleep(100 * time.Millisecond)
	if srv.Heartbeats() != after {
		t.Error("keep-alive kept running after teardown")
	}

	// Disposed is terminal.
	if err := b.Initialize(ctx, testApp()); !errors.Is(err, backend.ErrInvalidState) {
		t.Errorf("Initialize after dispose = %v, want ErrInvalidState", err)
	}
}

// TestE2E_KeepAliveFailure verifies a failing keep-alive reaches the
// registered session error handler instead of being dropped.
func TestE2E_KeepAliveFailure(t *testing.T) {
	srv := chromatest.NewServer()
	defer srv.Close()

	b := rest.New(rest.Config{
		Endpoint:          srv.HandshakeEndpoint(),
		HeartbeatInterval: 20 * time.Millisecond,
	})
	defer b.Close()

	errs := make(chan error, 1)
	b.SetSessionErrorHandler(func(err error) { errs <- err })

	if err := b.Initialize(context.Background(), testApp()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	srv.RejectHeartbeats(true)

	select {
	case err := <-errs:
		var callErr *backend.CallError
		if !errors.As(err, &callErr) {
			t.Fatalf("handler received %v, want CallError", err)
		}
		if callErr.Op != backend.OpHeartbeat {
			t.Errorf("failed op = %v, want heartbeat", callErr.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("keep-alive failure never reached the handler")
	}

	if b.HeartbeatStats().Healthy {
		t.Error("keep-alive still marked healthy after failure")
	}
}
