package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNoopLogger(t *testing.T) {
	// Must not panic on any event, including the zero value.
	var l NoopLogger
	l.Log(Event{})
	l.Log(Event{Kind: KindError, Err: errors.New("boom")})
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{KindStateChange, "state_change"},
		{KindRequest, "request"},
		{KindHeartbeat, "heartbeat"},
		{KindError, "error"},
		{EventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	adapter.Log(Event{
		Time:     time.Now(),
		Kind:     KindStateChange,
		Message:  "session established",
		Session:  5,
		OldState: "initializing",
		NewState: "active",
	})

	out := buf.String()
	for _, want := range []string{"session established", "kind=state_change", "session=5", "new_state=active"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

	adapter.Log(Event{
		Kind:    KindError,
		Message: "heartbeat failed",
		Err:     errors.New("connection refused"),
	})

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("error events should log at Warn: %s", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Errorf("output missing error detail: %s", out)
	}
}
