package state

import (
	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// Patch is a partial update applied by Merge.
//
// Materials and ArmorLevels are merged key by key: patch keys override stored
// values, every other stored key is kept. Values are raw so that string
// encoded numbers coming from clients are coerced the same way an import is.
//
// Rupees is a DELTA added to the stored balance (earning or spending
// currency). To overwrite the balance use the dedicated set-rupees operation.
type Patch struct {
	Materials   map[string]interface{} `json:"materials,omitempty"`
	ArmorLevels map[string]interface{} `json:"armorLevels,omitempty"`
	Rupees      interface{}            `json:"rupees,omitempty"`
}

// NewPatch returns an empty patch
func NewPatch() Patch {
	return Patch{
		Materials:   map[string]interface{}{},
		ArmorLevels: map[string]interface{}{},
	}
}

// WithMaterial sets the owned quantity of a material
func (p Patch) WithMaterial(materialID string, quantity int) Patch {
	if p.Materials == nil {
		p.Materials = map[string]interface{}{}
	}
	p.Materials[materialID] = quantity
	return p
}

// WithArmorLevel sets the current level of an armor piece
func (p Patch) WithArmorLevel(armorID string, level domain.Level) Patch {
	if p.ArmorLevels == nil {
		p.ArmorLevels = map[string]interface{}{}
	}
	p.ArmorLevels[armorID] = int(level)
	return p
}

// WithRupeeDelta adds delta to the stored rupee balance
func (p Patch) WithRupeeDelta(delta int) Patch {
	p.Rupees = delta
	return p
}

// Empty reports whether applying the patch would change nothing
func (p Patch) Empty() bool {
	return len(p.Materials) == 0 && len(p.ArmorLevels) == 0 && p.Rupees == nil
}

// Merge applies patch to current and validates the result.
// Nothing is returned on failure, so callers never persist a half-merged state.
func Merge(current domain.OwnedState, patch Patch) (domain.OwnedState, error) {
	materials := make(map[string]interface{}, len(current.Materials)+len(patch.Materials))
	for id, n := range current.Materials {
		materials[id] = n
	}
	for id, v := range patch.Materials {
		materials[id] = v
	}

	levels := make(map[string]interface{}, len(current.ArmorLevels)+len(patch.ArmorLevels))
	for id, level := range current.ArmorLevels {
		levels[id] = int(level)
	}
	for id, v := range patch.ArmorLevels {
		levels[id] = v
	}

	rupees := current.Rupees
	if patch.Rupees != nil {
		delta, err := coerceInt(patch.Rupees)
		if err != nil {
			var is issues
			is.add(KeyRupees, "%v", err)
			return domain.OwnedState{}, is.err()
		}
		rupees += delta
		if rupees > MaxQuantity {
			var is issues
			is.add(KeyRupees, "%v, balance would exceed %d", errOutOfBounds, MaxQuantity)
			return domain.OwnedState{}, is.err()
		}
	}

	return Validate(map[string]interface{}{
		KeyMaterials:   materials,
		KeyArmorLevels: levels,
		KeyRupees:      rupees,
	})
}

// WithRupees returns current with the rupee balance replaced, validated
func WithRupees(current domain.OwnedState, amount interface{}) (domain.OwnedState, error) {
	next := current.Clone()
	n, err := coerceInt(amount)
	if err != nil {
		var is issues
		is.add(KeyRupees, "%v", err)
		return domain.OwnedState{}, is.err()
	}
	next.Rupees = n
	return validateTyped(next)
}
