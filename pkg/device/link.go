package device

import (
	"context"
	"fmt"
	"sync"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Link is the facade for link devices: LED strips and enclosures addressed
// by position.
//
// The backend has no partial update: the whole buffer is resubmitted as one
// custom effect on every positional write. A single SetColor is an O(1)
// local mutation but a full create round trip.
type Link struct {
	*Device

	bufMu sync.Mutex
	buf   effect.LinkCustom
}

func newLink(d *Device) *Link { return &Link{Device: d} }

// Color returns the locally held color at the given position.
func (l *Link) Color(position int) (effect.Color, error) {
	if position < 0 || position >= effect.LinkLEDCount {
		return 0, fmt.Errorf("link position %d out of range [0,%d)", position, effect.LinkLEDCount)
	}
	l.bufMu.Lock()
	defer l.bufMu.Unlock()
	return l.buf[position], nil
}

// SetColor sets the color at the given position and resubmits the whole
// buffer as a new custom effect.
func (l *Link) SetColor(ctx context.Context, position int, color effect.Color) (effect.ID, error) {
	if position < 0 || position >= effect.LinkLEDCount {
		return effect.Nil, fmt.Errorf("link position %d out of range [0,%d)", position, effect.LinkLEDCount)
	}

	l.bufMu.Lock()
	l.buf[position] = color
	buf := l.buf
	l.bufMu.Unlock()

	return l.SetEffect(ctx, effect.KindCustom, buf)
}

// SetCustom replaces the whole buffer and submits it.
func (l *Link) SetCustom(ctx context.Context, buf effect.LinkCustom) (effect.ID, error) {
	l.bufMu.Lock()
	l.buf = buf
	l.bufMu.Unlock()

	return l.SetEffect(ctx, effect.KindCustom, buf)
}

// SetStatic applies one color to every LED. The positional buffer is left
// untouched.
func (l *Link) SetStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return l.setAllStatic(ctx, color)
}

// SetAll applies one color to every LED.
func (l *Link) SetAll(ctx context.Context, color effect.Color) (effect.ID, error) {
	return l.setAllStatic(ctx, color)
}
