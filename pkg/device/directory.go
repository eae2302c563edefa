package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
	"github.com/chroma-sdk/chroma-go/pkg/log"
)

// Directory opens device facades against one backend and hands out the same
// instance for repeated opens of a category.
type Directory struct {
	backend backend.Backend
	catalog *Catalog
	logger  log.Logger

	mu       sync.Mutex
	typed    map[effect.Category]any
	generics map[uuid.UUID]*Generic
}

// DirectoryConfig configures a Directory. The zero value selects the
// built-in catalog and no logging.
type DirectoryConfig struct {
	// Catalog is the generic-device allow-list. Defaults to DefaultCatalog.
	Catalog *Catalog

	// Logger receives open/close events. Defaults to log.NoopLogger.
	Logger log.Logger
}

// NewDirectory creates a directory over the given backend.
func NewDirectory(b backend.Backend, cfg DirectoryConfig) *Directory {
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}
	return &Directory{
		backend:  b,
		catalog:  cfg.Catalog,
		logger:   cfg.Logger,
		typed:    make(map[effect.Category]any),
		generics: make(map[uuid.UUID]*Generic),
	}
}

// open returns the cached facade for a category, constructing it on first
// use. Repeated opens share one instance so current-effect bookkeeping (and
// the link device's positional buffer) stays consistent.
func open[T any](dir *Directory, category effect.Category, build func(*Device) T) T {
	dir.mu.Lock()
	defer dir.mu.Unlock()

	if cached, ok := dir.typed[category]; ok {
		return cached.(T)
	}
	facade := build(newDevice(dir.backend, category))
	dir.typed[category] = facade

	dir.logger.Log(log.Event{
		Time:    time.Now(),
		Kind:    log.KindStateChange,
		Message: fmt.Sprintf("opened %s device", category),
	})
	return facade
}

// Keyboard opens the keyboard device.
func (dir *Directory) Keyboard() *Keyboard {
	return open(dir, effect.CategoryKeyboard, newKeyboard)
}

// Mouse opens the mouse device.
func (dir *Directory) Mouse() *Mouse {
	return open(dir, effect.CategoryMouse, newMouse)
}

// Mousepad opens the mousepad device.
func (dir *Directory) Mousepad() *Mousepad {
	return open(dir, effect.CategoryMousepad, newMousepad)
}

// Headset opens the headset device.
func (dir *Directory) Headset() *Headset {
	return open(dir, effect.CategoryHeadset, newHeadset)
}

// Keypad opens the keypad device.
func (dir *Directory) Keypad() *Keypad {
	return open(dir, effect.CategoryKeypad, newKeypad)
}

// Link opens the link device.
func (dir *Directory) Link() *Link {
	return open(dir, effect.CategoryLink, newLink)
}

// Generic opens an untyped device by identifier. The identifier must be on
// the catalog's allow-list; unknown identifiers fail with
// backend.ErrUnsupportedDevice.
func (dir *Directory) Generic(id uuid.UUID) (*Generic, error) {
	entry, ok := dir.catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("open generic device %s: %w", id, backend.ErrUnsupportedDevice)
	}

	dir.mu.Lock()
	defer dir.mu.Unlock()

	if g, ok := dir.generics[id]; ok {
		return g, nil
	}
	g := newGeneric(newDevice(dir.backend, effect.CategoryGeneric), entry)
	dir.generics[id] = g

	dir.logger.Log(log.Event{
		Time:    time.Now(),
		Kind:    log.KindStateChange,
		Message: fmt.Sprintf("opened generic device %s (%s)", id, entry.Name),
	})
	return g, nil
}

// Close clears every opened device best-effort and forgets them.
func (dir *Directory) Close() error {
	dir.mu.Lock()
	typed := dir.typed
	generics := dir.generics
	dir.typed = make(map[effect.Category]any)
	dir.generics = make(map[uuid.UUID]*Generic)
	dir.mu.Unlock()

	for _, facade := range typed {
		if closer, ok := facade.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}
	for _, g := range generics {
		_ = g.Close()
	}
	return nil
}
