package device

import (
	"context"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Mousepad is the facade for the mousepad category.
type Mousepad struct {
	*Device
}

func newMousepad(d *Device) *Mousepad { return &Mousepad{Device: d} }

// SetStatic applies one color to every LED.
func (m *Mousepad) SetStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return m.setAllStatic(ctx, color)
}

// SetAll applies one color to every LED.
func (m *Mousepad) SetAll(ctx context.Context, color effect.Color) (effect.ID, error) {
	return m.setAllStatic(ctx, color)
}

// SetCustom applies a per-LED color strip.
func (m *Mousepad) SetCustom(ctx context.Context, strip effect.MousepadCustom) (effect.ID, error) {
	return m.SetEffect(ctx, effect.KindCustom, strip)
}
