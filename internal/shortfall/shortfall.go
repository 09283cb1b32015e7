// Package shortfall computes the materials and rupees still needed to bring
// armor pieces from their owned levels up to target levels.
package shortfall

import (
	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// Targets maps armor id to the level the player is aiming for.
// Pieces absent from Targets aim for their max level.
type Targets map[string]domain.Level

// Calculate returns the shortfall of owned against the cost steps needed to
// reach targets. Only pieces listed in pieces take part; cost steps for any
// other armor id are skipped. Inputs are never modified.
func Calculate(pieces []domain.ArmorPiece, owned domain.OwnedState, costs []domain.UpgradeCost, targets Targets) domain.Shortfall {
	effective := effectiveTargets(pieces, owned, targets)

	needed := make(map[string]int)
	rupees := 0
	for _, cost := range costs {
		target, ok := effective[cost.ArmorID]
		if !ok {
			continue
		}
		current := owned.ArmorLevel(cost.ArmorID)
		if cost.Level <= current || cost.Level > target {
			continue
		}
		for _, req := range cost.Requirements {
			needed[req.MaterialID] += req.Quantity
		}
		rupees += domain.RupeesForLevel(cost.Level)
	}

	result := domain.Shortfall{
		ByMaterial: make(map[string]domain.Amounts, len(needed)),
		Rupees:     domain.NewAmounts(owned.Rupees, rupees),
	}
	for id, n := range needed {
		if n <= 0 {
			continue
		}
		result.ByMaterial[id] = domain.NewAmounts(owned.MaterialCount(id), n)
	}
	return result
}

// effectiveTargets resolves the level each piece is planned up to.
// A target below the owned level drops the piece; there is no downgrade credit.
func effectiveTargets(pieces []domain.ArmorPiece, owned domain.OwnedState, targets Targets) map[string]domain.Level {
	out := make(map[string]domain.Level, len(pieces))
	for _, p := range pieces {
		target := p.MaxLevel
		if t, ok := targets[p.ID]; ok {
			target = t
		}
		if target > p.MaxLevel {
			target = p.MaxLevel
		}
		if target < owned.ArmorLevel(p.ID) {
			continue
		}
		out[p.ID] = target
	}
	return out
}

// Calculator binds the shortfall computation to a catalog
type Calculator struct {
	catalog *catalog.Catalog
}

// NewCalculator creates a Calculator over c
func NewCalculator(c *catalog.Catalog) *Calculator {
	return &Calculator{catalog: c}
}

// Calculate runs against the catalog's armor pieces. A nil costs uses the
// catalog cost table.
func (c *Calculator) Calculate(owned domain.OwnedState, costs []domain.UpgradeCost, targets Targets) domain.Shortfall {
	if costs == nil {
		costs = c.catalog.Costs()
	}
	return Calculate(c.catalog.ArmorPieces(), owned, costs, targets)
}

// ToMax is the shortfall of upgrading every piece to its max level
func (c *Calculator) ToMax(owned domain.OwnedState) domain.Shortfall {
	return c.Calculate(owned, nil, nil)
}
