package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// Sentinel errors for catalog validation. Every one is also wrapped together
// with domain.ErrInvalidCatalog.
var (
	ErrDuplicateID      = errors.New("duplicate id")
	ErrUnknownReference = errors.New("unknown reference")
	ErrInvalidEntry     = errors.New("invalid entry")
)

type costKey struct {
	armorID string
	level   domain.Level
}

// Validate checks ids, levels and cross-table references.
// Schema checks catch shape problems; this catches what a schema cannot.
func Validate(materials []domain.Material, pieces []domain.ArmorPiece, costs []domain.UpgradeCost) error {
	materialIDs := make(map[string]bool, len(materials))
	for i, m := range materials {
		if m.ID == "" {
			return invalid(ErrInvalidEntry, "material at index %d has empty id", i)
		}
		if materialIDs[m.ID] {
			return invalid(ErrDuplicateID, "material '%s'", m.ID)
		}
		materialIDs[m.ID] = true
	}

	armorMax := make(map[string]domain.Level, len(pieces))
	for i, p := range pieces {
		if p.ID == "" {
			return invalid(ErrInvalidEntry, "armor piece at index %d has empty id", i)
		}
		if _, exists := armorMax[p.ID]; exists {
			return invalid(ErrDuplicateID, "armor piece '%s'", p.ID)
		}
		if !p.MaxLevel.Valid() {
			return invalid(ErrInvalidEntry, "armor piece '%s' has max level %d outside [%d, %d]", p.ID, p.MaxLevel, domain.LevelMin, domain.LevelMax)
		}
		if !p.Slot.Valid() {
			return invalid(ErrInvalidEntry, "armor piece '%s' has unknown slot '%s'", p.ID, p.Slot)
		}
		armorMax[p.ID] = p.MaxLevel
	}

	seen := make(map[costKey]bool, len(costs))
	for i, cost := range costs {
		maxLevel, ok := armorMax[cost.ArmorID]
		if !ok {
			return invalid(ErrUnknownReference, "cost[%d] references armor '%s'", i, cost.ArmorID)
		}
		if cost.Level <= domain.LevelMin || cost.Level > maxLevel {
			return invalid(ErrInvalidEntry, "cost[%d] for '%s' has level %d outside [1, %d]", i, cost.ArmorID, cost.Level, maxLevel)
		}
		key := costKey{armorID: cost.ArmorID, level: cost.Level}
		if seen[key] {
			return invalid(ErrDuplicateID, "cost for '%s' level %d", cost.ArmorID, cost.Level)
		}
		seen[key] = true

		for j, req := range cost.Requirements {
			if !materialIDs[req.MaterialID] {
				return invalid(ErrUnknownReference, "cost for '%s' level %d requirement[%d] references material '%s'", cost.ArmorID, cost.Level, j, req.MaterialID)
			}
			if req.Quantity < 0 {
				return invalid(ErrInvalidEntry, "cost for '%s' level %d requirement[%d] has negative quantity", cost.ArmorID, cost.Level, j)
			}
		}
	}

	return nil
}

func invalid(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", domain.ErrInvalidCatalog, kind, fmt.Sprintf(format, args...))
}

// fingerprintOf hashes the canonical JSON of all tables
func fingerprintOf(materials []domain.Material, pieces []domain.ArmorPiece, costs []domain.UpgradeCost) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	// Encoding plain structs and slices cannot fail
	_ = enc.Encode(materials)
	_ = enc.Encode(pieces)
	_ = enc.Encode(costs)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
