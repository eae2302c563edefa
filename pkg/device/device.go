package device

import (
	"context"
	"sync"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Device is the base facade every category embeds. It owns the "current
// effect" bookkeeping for one opened device.
type Device struct {
	category effect.Category
	backend  backend.Backend

	mu      sync.Mutex
	current effect.ID
}

func newDevice(b backend.Backend, category effect.Category) *Device {
	return &Device{category: category, backend: b}
}

// Category returns the device's fixed category.
func (d *Device) Category() effect.Category {
	return d.category
}

// CurrentEffect returns the id of the effect most recently applied to this
// device, or the zero id when none is active.
func (d *Device) CurrentEffect() effect.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// SetEffect creates an effect of the given kind and makes it this device's
// current effect. The previous effect id is not deleted; the backend
// replaces the active effect on its side.
func (d *Device) SetEffect(ctx context.Context, kind effect.Kind, payload any) (effect.ID, error) {
	id, err := d.backend.CreateEffect(ctx, d.category, kind, payload)
	if err != nil {
		return effect.Nil, err
	}

	d.mu.Lock()
	d.current = id
	d.mu.Unlock()
	return id, nil
}

// Apply re-activates a previously created effect by id.
func (d *Device) Apply(ctx context.Context, id effect.ID) error {
	if err := d.backend.SetEffect(ctx, id); err != nil {
		return err
	}
	d.mu.Lock()
	d.current = id
	d.mu.Unlock()
	return nil
}

// Delete releases a previously created effect. Deleting the current effect
// resets the device's bookkeeping to "no effect".
func (d *Device) Delete(ctx context.Context, id effect.ID) error {
	if err := d.backend.DeleteEffect(ctx, id); err != nil {
		return err
	}
	d.mu.Lock()
	if d.current == id {
		d.current = effect.Nil
	}
	d.mu.Unlock()
	return nil
}

// Clear removes the active effect. Equivalent to setting the category's
// None kind.
func (d *Device) Clear(ctx context.Context) error {
	_, err := d.SetEffect(ctx, effect.KindNone, nil)
	return err
}

// Close clears the device best-effort. The clear is not guaranteed; a
// disposed backend makes it a silent no-op.
func (d *Device) Close() error {
	_ = d.Clear(context.Background())
	return nil
}

// setAllStatic is the shared SetAll implementation for color-capable
// categories.
func (d *Device) setAllStatic(ctx context.Context, color effect.Color) (effect.ID, error) {
	return d.SetEffect(ctx, effect.KindStatic, effect.StaticParams{Color: color})
}
