package device

import (
	"context"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Mouse is the facade for the mouse category.
type Mouse struct {
	*Device
}

func newMouse(d *Device) *Mouse { return &Mouse{Device: d} }

// SetStatic applies one color to every LED.
func (m *Mouse) SetStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return m.setAllStatic(ctx, color)
}

// SetAll applies one color to every LED.
func (m *Mouse) SetAll(ctx context.Context, color effect.Color) (effect.ID, error) {
	return m.setAllStatic(ctx, color)
}

// SetCustom applies a per-LED color grid.
func (m *Mouse) SetCustom(ctx context.Context, grid effect.MouseCustom) (effect.ID, error) {
	return m.SetEffect(ctx, effect.KindCustom, grid)
}
