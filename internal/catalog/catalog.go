// Package catalog holds the static game reference tables: materials, armor
// pieces and the per-level material cost of every upgrade step.
//
// A Catalog is immutable once built. Accessors hand out copies, so callers
// may sort or modify the returned slices.
package catalog

import (
	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// Catalog is a validated, read-only set of reference tables
type Catalog struct {
	materials []domain.Material
	pieces    []domain.ArmorPiece
	costs     []domain.UpgradeCost

	materialByID map[string]domain.Material
	armorByID    map[string]domain.ArmorPiece

	fingerprint string
}

// Snapshot is the serialisable view of a catalog returned to UI clients
type Snapshot struct {
	Materials     []domain.Material    `json:"materials"`
	Armor         []domain.ArmorPiece  `json:"armor"`
	Costs         []domain.UpgradeCost `json:"costs"`
	RupeesByLevel map[int]int          `json:"rupeesByLevel"`
	Fingerprint   string               `json:"fingerprint"`
}

// New validates the tables and builds a catalog from them
func New(materials []domain.Material, pieces []domain.ArmorPiece, costs []domain.UpgradeCost) (*Catalog, error) {
	if err := Validate(materials, pieces, costs); err != nil {
		return nil, err
	}

	c := &Catalog{
		materials:    append([]domain.Material(nil), materials...),
		pieces:       append([]domain.ArmorPiece(nil), pieces...),
		costs:        copyCosts(costs),
		materialByID: make(map[string]domain.Material, len(materials)),
		armorByID:    make(map[string]domain.ArmorPiece, len(pieces)),
	}
	for _, m := range materials {
		c.materialByID[m.ID] = m
	}
	for _, p := range pieces {
		c.armorByID[p.ID] = p
	}
	c.fingerprint = fingerprintOf(c.materials, c.pieces, c.costs)
	return c, nil
}

// Materials returns every material in table order
func (c *Catalog) Materials() []domain.Material {
	return append([]domain.Material(nil), c.materials...)
}

// ArmorPieces returns every armor piece in table order
func (c *Catalog) ArmorPieces() []domain.ArmorPiece {
	return append([]domain.ArmorPiece(nil), c.pieces...)
}

// Costs returns the full upgrade cost table
func (c *Catalog) Costs() []domain.UpgradeCost {
	return copyCosts(c.costs)
}

// Material looks up a material by id
func (c *Catalog) Material(id string) (domain.Material, bool) {
	m, ok := c.materialByID[id]
	return m, ok
}

// Armor looks up an armor piece by id
func (c *Catalog) Armor(id string) (domain.ArmorPiece, bool) {
	p, ok := c.armorByID[id]
	return p, ok
}

// MaxLevel returns the highest level an armor piece can reach
func (c *Catalog) MaxLevel(id string) (domain.Level, bool) {
	p, ok := c.armorByID[id]
	if !ok {
		return 0, false
	}
	return p.MaxLevel, true
}

// ArmorIDs returns every armor id in table order
func (c *Catalog) ArmorIDs() []string {
	ids := make([]string, 0, len(c.pieces))
	for _, p := range c.pieces {
		ids = append(ids, p.ID)
	}
	return ids
}

// Fingerprint identifies the catalog content; it changes whenever any table does
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Snapshot returns a copy of all tables plus the shared rupee cost table
func (c *Catalog) Snapshot() Snapshot {
	rupees := make(map[int]int, int(domain.LevelMax))
	for level := domain.LevelMin + 1; level <= domain.LevelMax; level++ {
		rupees[int(level)] = domain.RupeesForLevel(level)
	}
	return Snapshot{
		Materials:     c.Materials(),
		Armor:         c.ArmorPieces(),
		Costs:         c.Costs(),
		RupeesByLevel: rupees,
		Fingerprint:   c.fingerprint,
	}
}

func copyCosts(costs []domain.UpgradeCost) []domain.UpgradeCost {
	out := make([]domain.UpgradeCost, len(costs))
	for i, cost := range costs {
		out[i] = cost
		out[i].Requirements = append([]domain.MaterialRequirement(nil), cost.Requirements...)
	}
	return out
}
