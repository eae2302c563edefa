package rest

import (
	"context"
	"sync"
	"time"
)

// DefaultHeartbeatInterval is the keep-alive period the control plane
// expects. Sessions without a beat for a few periods are expired server-side.
const DefaultHeartbeatInterval = 1000 * time.Millisecond

// heartbeat issues the periodic keep-alive call while a session is active.
//
// The loop is armed with Start after the session is published and the first
// beat fires one full period later, never immediately. A failed beat is
// fatal for the session: the loop reports it through onError and exits.
// Stopping is tied to the backend's lifecycle transitions; after Stop
// returns no new beat can start, though a beat already in flight may
// complete.
type heartbeat struct {
	interval time.Duration
	beat     func(ctx context.Context) (int64, error)
	onError  func(error)

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	lastTick int64
	lastBeat time.Time
	failed   bool
}

// HeartbeatStats is a snapshot of keep-alive progress.
type HeartbeatStats struct {
	// LastTick is the tick counter from the most recent acknowledged beat.
	LastTick int64

	// LastBeat is when the most recent beat was acknowledged.
	LastBeat time.Time

	// Healthy is false once a beat has failed; the session is then in an
	// undefined state and should be disposed.
	Healthy bool
}

// newHeartbeat creates an unarmed heartbeat. beat performs one keep-alive
// call and returns the acknowledged tick; onError receives the failure that
// ended the loop.
func newHeartbeat(interval time.Duration, beat func(ctx context.Context) (int64, error), onError func(error)) *heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &heartbeat{
		interval: interval,
		beat:     beat,
		onError:  onError,
	}
}

// Start arms the timer. Calling Start while running has no effect.
func (h *heartbeat) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return
	}
	h.running = true
	h.stopCh = make(chan struct{})

	go h.loop(h.stopCh)
}

// Stop disarms the timer. Idempotent.
func (h *heartbeat) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return
	}
	h.running = false
	close(h.stopCh)
}

// Stats returns a snapshot of keep-alive progress.
func (h *heartbeat) Stats() HeartbeatStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HeartbeatStats{
		LastTick: h.lastTick,
		LastBeat: h.lastBeat,
		Healthy:  !h.failed,
	}
}

func (h *heartbeat) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		// Re-check after waking: Stop may have raced the tick.
		select {
		case <-stopCh:
			return
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.interval)
		tick, err := h.beat(ctx)
		cancel()

		if err != nil {
			h.mu.Lock()
			h.failed = true
			h.running = false
			h.mu.Unlock()
			h.onError(err)
			return
		}

		h.mu.Lock()
		h.lastTick = tick
		h.lastBeat = time.Now()
		h.mu.Unlock()
	}
}
