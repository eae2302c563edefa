package device

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry describes one recognized generic lighting device.
type CatalogEntry struct {
	// ID is the device's hardware identifier.
	ID uuid.UUID

	// Name is a short slug for display and logs.
	Name string

	// LEDs is the number of addressable LEDs, when known.
	LEDs int
}

// Catalog is the allow-list of generic-device identifiers the directory
// accepts. The built-in catalog ships with the library; tests and embedders
// with their own hardware database inject a replacement.
type Catalog struct {
	entries map[uuid.UUID]CatalogEntry
}

// NewCatalog builds a catalog from explicit entries.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[uuid.UUID]CatalogEntry, len(entries))}
	for _, e := range entries {
		c.entries[e.ID] = e
	}
	return c
}

// ParseCatalog parses a YAML device catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Devices []struct {
			ID   string `yaml:"id"`
			Name string `yaml:"name"`
			LEDs int    `yaml:"leds"`
		} `yaml:"devices"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse device catalog: %w", err)
	}

	entries := make([]CatalogEntry, 0, len(doc.Devices))
	for _, d := range doc.Devices {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, fmt.Errorf("parse device catalog: entry %q: %w", d.Name, err)
		}
		entries = append(entries, CatalogEntry{ID: id, Name: d.Name, LEDs: d.LEDs})
	}
	return NewCatalog(entries), nil
}

// Lookup returns the entry for an identifier.
func (c *Catalog) Lookup(id uuid.UUID) (CatalogEntry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of recognized devices.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all recognized devices, sorted by name.
func (c *Catalog) Entries() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the catalog embedded in the library.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(catalogYAML)
		if err != nil {
			// The embedded catalog is validated by tests; failing to parse
			// it is a packaging bug.
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
