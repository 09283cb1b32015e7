package migrations

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

// Step is one pure document transformation in the migration chain
type Step struct {
	Version int64
	Name    string
	Apply   func(doc map[string]interface{}) (domain.OwnedState, error)
}

// Steps returns the document steps that follow table creation
func Steps(cat *catalog.Catalog) []Step {
	return []Step{
		{Version: VersionOwnedState, Name: StepOwnedState, Apply: OwnedStateStep},
		{Version: VersionCurrency, Name: StepCurrency, Apply: CurrencyStep},
		{Version: VersionCatalogSync, Name: StepCatalogSync, Apply: CatalogSyncStep(cat)},
	}
}

// OwnedStateStep keeps materials and armor levels and adds the rupee balance.
// Documents written before currency existed start at zero; a document that
// already carries a valid balance keeps it.
func OwnedStateStep(doc map[string]interface{}) (domain.OwnedState, error) {
	return state.Validate(map[string]interface{}{
		state.KeyMaterials:   doc[state.KeyMaterials],
		state.KeyArmorLevels: doc[state.KeyArmorLevels],
		state.KeyRupees:      existingRupees(doc),
	})
}

func existingRupees(doc map[string]interface{}) int {
	raw, ok := doc[state.KeyRupees]
	if !ok {
		return 0
	}
	carried, err := state.Validate(map[string]interface{}{state.KeyRupees: raw})
	if err != nil {
		return 0
	}
	return carried.Rupees
}

// CurrencyStep carries materials, armor levels and rupees forward, absent rupees read as zero
func CurrencyStep(doc map[string]interface{}) (domain.OwnedState, error) {
	return state.Validate(map[string]interface{}{
		state.KeyMaterials:   doc[state.KeyMaterials],
		state.KeyArmorLevels: doc[state.KeyArmorLevels],
		state.KeyRupees:      doc[state.KeyRupees],
	})
}

// CatalogSyncStep aligns armor levels with cat: unknown ids are dropped,
// levels are truncated and clamped to each piece's max, and every catalog
// piece missing from the document starts at level 0.
func CatalogSyncStep(cat *catalog.Catalog) func(map[string]interface{}) (domain.OwnedState, error) {
	return func(doc map[string]interface{}) (domain.OwnedState, error) {
		levels := make(map[string]interface{})
		if stored, ok := doc[state.KeyArmorLevels].(map[string]interface{}); ok {
			for id, v := range stored {
				maxLevel, known := cat.MaxLevel(id)
				if !known {
					continue
				}
				levels[id] = clampLevel(truncateLevel(v), maxLevel)
			}
		}
		for _, id := range cat.ArmorIDs() {
			if _, ok := levels[id]; !ok {
				levels[id] = int(domain.LevelMin)
			}
		}

		return state.Validate(map[string]interface{}{
			state.KeyMaterials:   doc[state.KeyMaterials],
			state.KeyArmorLevels: levels,
			state.KeyRupees:      doc[state.KeyRupees],
		})
	}
}

// truncateLevel drops any fraction; anything non-numeric reads as 0
func truncateLevel(v interface{}) int {
	var f float64
	switch t := v.(type) {
	case int:
		return t
	case int64:
		f = float64(t)
	case float64:
		f = t
	case json.Number:
		parsed, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func clampLevel(level int, maxLevel domain.Level) int {
	if level < int(domain.LevelMin) {
		return int(domain.LevelMin)
	}
	if level > int(maxLevel) {
		return int(maxLevel)
	}
	return level
}
