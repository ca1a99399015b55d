// Package catalog provides the read-only vehicle catalog.
// The catalog is embedded at compile time, so the fleet on offer and the
// running code are always in sync; there is no runtime mutation path.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

//go:embed vehicles.json
var raw []byte

// Catalog is an immutable, id-indexed view of the embedded vehicle list.
type Catalog struct {
	vehicles []domain.Vehicle
	byID     map[int64]domain.Vehicle
}

// Load parses the embedded catalog. It fails only if the embedded asset is
// malformed, which is a build defect, so callers typically treat an error as
// fatal at startup.
func Load() (*Catalog, error) {
	var vehicles []domain.Vehicle
	if err := json.Unmarshal(raw, &vehicles); err != nil {
		return nil, fmt.Errorf("catalog.Load: parse embedded catalog: %w", err)
	}

	byID := make(map[int64]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		if _, dup := byID[v.ID]; dup {
			return nil, fmt.Errorf("catalog.Load: duplicate vehicle id %d", v.ID)
		}
		byID[v.ID] = v
	}

	return &Catalog{vehicles: vehicles, byID: byID}, nil
}

// All returns every vehicle in catalog order. The returned slice is a copy;
// callers may not mutate catalog state through it.
func (c *Catalog) All() []domain.Vehicle {
	out := make([]domain.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// Get returns the vehicle with the given id.
// Returns domain.ErrNotFound for unknown ids.
func (c *Catalog) Get(id int64) (domain.Vehicle, error) {
	v, ok := c.byID[id]
	if !ok {
		return domain.Vehicle{}, fmt.Errorf("catalog.Get: vehicle %d: %w", id, domain.ErrNotFound)
	}
	return v, nil
}
