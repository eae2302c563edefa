package device

import (
	"context"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Headset is the facade for the headset category.
type Headset struct {
	*Device
}

func newHeadset(d *Device) *Headset { return &Headset{Device: d} }

// SetStatic applies one color to every LED.
func (h *Headset) SetStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return h.setAllStatic(ctx, color)
}

// SetAll applies one color to every LED.
func (h *Headset) SetAll(ctx context.Context, color effect.Color) (effect.ID, error) {
	return h.setAllStatic(ctx, color)
}
