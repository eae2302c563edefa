package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Generic is the facade for untyped devices opened by identifier. Its
// layout is unknown to the library, so only raw effect submission is
// available; "set all" has no defined meaning.
type Generic struct {
	*Device

	id    uuid.UUID
	entry CatalogEntry
}

func newGeneric(d *Device, entry CatalogEntry) *Generic {
	return &Generic{Device: d, id: entry.ID, entry: entry}
}

// DeviceID returns the identifier the device was opened with.
func (g *Generic) DeviceID() uuid.UUID {
	return g.id
}

// Name returns the catalog name of the device.
func (g *Generic) Name() string {
	return g.entry.Name
}

// SetAll is not available on untyped devices.
func (g *Generic) SetAll(context.Context, effect.Color) (effect.ID, error) {
	return effect.Nil, fmt.Errorf("set all on generic device %s: %w", g.id, backend.ErrUnsupportedOperation)
}
