package device

import (
	"context"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Keyboard is the facade for the keyboard category.
type Keyboard struct {
	*Device
}

func newKeyboard(d *Device) *Keyboard { return &Keyboard{Device: d} }

// SetStatic applies one color to every key.
func (k *Keyboard) SetStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return k.setAllStatic(ctx, color)
}

// SetAll applies one color to every key.
func (k *Keyboard) SetAll(ctx context.Context, color effect.Color) (effect.ID, error) {
	return k.setAllStatic(ctx, color)
}

// SetCustom applies a per-key color grid.
func (k *Keyboard) SetCustom(ctx context.Context, grid effect.KeyboardCustom) (effect.ID, error) {
	return k.SetEffect(ctx, effect.KindCustom, grid)
}
