package device

import (
	"context"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Keypad is the facade for the keypad category.
type Keypad struct {
	*Device
}

func newKeypad(d *Device) *Keypad { return &Keypad{Device: d} }

// SetStatic applies one color to every key.
func (k *Keypad) SetStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return k.setAllStatic(ctx, color)
}

// SetAll applies one color to every key.
func (k *Keypad) SetAll(ctx context.Context, color effect.Color) (effect.ID, error) {
	return k.setAllStatic(ctx, color)
}

// SetCustom applies a per-key color grid.
func (k *Keypad) SetCustom(ctx context.Context, grid effect.KeypadCustom) (effect.ID, error) {
	return k.SetEffect(ctx, effect.KindCustom, grid)
}
