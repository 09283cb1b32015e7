package shortfall

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

var helm = domain.ArmorPiece{ID: "barbarian-helm", Set: "barbarian", Name: "Barbarian Helm", MaxLevel: 4, Slot: domain.SlotHead}

func req(materialID string, quantity int) domain.MaterialRequirement {
	return domain.MaterialRequirement{MaterialID: materialID, Quantity: quantity}
}

func helmCosts() []domain.UpgradeCost {
	return []domain.UpgradeCost{
		{ArmorID: "barbarian-helm", Level: 1, Requirements: []domain.MaterialRequirement{req("silent-princess", 3)}},
		{ArmorID: "barbarian-helm", Level: 2, Requirements: []domain.MaterialRequirement{req("silent-princess", 2), req("lizalfos-horn", 5)}},
		{ArmorID: "barbarian-helm", Level: 3, Requirements: []domain.MaterialRequirement{req("lynel-saber-horn", 4)}},
		{ArmorID: "barbarian-helm", Level: 4, Requirements: []domain.MaterialRequirement{req("lynel-hoof", 2)}},
	}
}

func owned(levels map[string]domain.Level, materials map[string]int, rupees int) domain.OwnedState {
	s := state.Default()
	for k, v := range levels {
		s.ArmorLevels[k] = v
	}
	for k, v := range materials {
		s.Materials[k] = v
	}
	s.Rupees = rupees
	return s
}

func TestCalculate_SingleStep(t *testing.T) {
	costs := []domain.UpgradeCost{
		{ArmorID: "barbarian-helm", Level: 1, Requirements: []domain.MaterialRequirement{req("silent-princess", 3)}},
	}

	got := Calculate([]domain.ArmorPiece{helm}, owned(map[string]domain.Level{"barbarian-helm": 0}, nil, 0), costs, nil)

	assert.Equal(t, map[string]domain.Amounts{
		"silent-princess": {Have: 0, Needed: 3, Missing: 3},
	}, got.ByMaterial)
	assert.Equal(t, domain.Amounts{Have: 0, Needed: 10, Missing: 10}, got.Rupees)
}

func TestCalculate_AllLevelsAccumulate(t *testing.T) {
	got := Calculate([]domain.ArmorPiece{helm}, owned(nil, map[string]int{"silent-princess": 1}, 100), helmCosts(), nil)

	assert.Equal(t, domain.Amounts{Have: 1, Needed: 5, Missing: 4}, got.ByMaterial["silent-princess"])
	assert.Equal(t, domain.Amounts{Have: 0, Needed: 5, Missing: 5}, got.ByMaterial["lizalfos-horn"])
	assert.Equal(t, 4, got.ByMaterial["lynel-saber-horn"].Needed)
	assert.Equal(t, 2, got.ByMaterial["lynel-hoof"].Needed)
	assert.Equal(t, domain.Amounts{Have: 100, Needed: 760, Missing: 660}, got.Rupees)
}

func TestCalculate_MaxedPieceContributesNothing(t *testing.T) {
	got := Calculate([]domain.ArmorPiece{helm}, owned(map[string]domain.Level{"barbarian-helm": 4}, nil, 0), helmCosts(), nil)

	assert.Empty(t, got.ByMaterial)
	assert.Equal(t, domain.Amounts{}, got.Rupees)
	assert.True(t, got.Complete())
}

func TestCalculate_Targets(t *testing.T) {
	pieces := []domain.ArmorPiece{helm}

	tests := []struct {
		name       string
		current    domain.Level
		target     domain.Level
		wantRupees int
		wantIDs    []string
	}{
		{name: "partial target", current: 0, target: 2, wantRupees: 60, wantIDs: []string{"lizalfos-horn", "silent-princess"}},
		{name: "from current level", current: 2, target: 3, wantRupees: 200, wantIDs: []string{"lynel-saber-horn"}},
		{name: "target equals current", current: 3, target: 3, wantRupees: 0},
		{name: "target below current gives no credit", current: 3, target: 1, wantRupees: 0},
		{name: "target above max is clamped", current: 3, target: 9, wantRupees: 500, wantIDs: []string{"lynel-hoof"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(pieces, owned(map[string]domain.Level{"barbarian-helm": tt.current}, nil, 0), helmCosts(), Targets{"barbarian-helm": tt.target})

			assert.Equal(t, tt.wantRupees, got.Rupees.Needed)
			ids := make([]string, 0)
			for _, row := range got.Materials() {
				ids = append(ids, row.MaterialID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestCalculate_UnknownArmorIgnored(t *testing.T) {
	costs := append(helmCosts(), domain.UpgradeCost{
		ArmorID: "ghost-armor", Level: 1, Requirements: []domain.MaterialRequirement{req("ectoplasm", 99)},
	})
	s := owned(map[string]domain.Level{"barbarian-helm": 4, "ghost-armor": 0}, nil, 0)

	got := Calculate([]domain.ArmorPiece{helm}, s, costs, Targets{"ghost-armor": 4})

	assert.NotContains(t, got.ByMaterial, "ectoplasm")
	assert.Zero(t, got.Rupees.Needed)
}

func TestCalculate_ZeroQuantityOmitted(t *testing.T) {
	costs := []domain.UpgradeCost{
		{ArmorID: "barbarian-helm", Level: 1, Requirements: []domain.MaterialRequirement{req("amber", 0), req("flint", 1)}},
	}

	got := Calculate([]domain.ArmorPiece{helm}, state.Default(), costs, nil)

	assert.NotContains(t, got.ByMaterial, "amber")
	assert.Contains(t, got.ByMaterial, "flint")
}

func TestCalculate_SurplusIsNotMissing(t *testing.T) {
	s := owned(nil, map[string]int{"silent-princess": 50, "lizalfos-horn": 50, "lynel-saber-horn": 50, "lynel-hoof": 50}, 10000)

	got := Calculate([]domain.ArmorPiece{helm}, s, helmCosts(), nil)

	assert.True(t, got.Complete())
	assert.Equal(t, domain.Amounts{Have: 50, Needed: 5, Missing: 0}, got.ByMaterial["silent-princess"])
}

func TestCalculate_PureAndDeterministic(t *testing.T) {
	s := owned(map[string]domain.Level{"barbarian-helm": 1}, map[string]int{"silent-princess": 1}, 5)
	snapshot := s.Clone()
	costs := helmCosts()
	targets := Targets{"barbarian-helm": 3}

	first := Calculate([]domain.ArmorPiece{helm}, s, costs, targets)
	second := Calculate([]domain.ArmorPiece{helm}, s, costs, targets)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, s)
	assert.Equal(t, helmCosts(), costs)
	assert.Equal(t, Targets{"barbarian-helm": 3}, targets)
}

func TestCalculate_MissingInvariant(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		s := state.Default()
		for _, id := range c.ArmorIDs() {
			s.ArmorLevels[id] = domain.Level(rng.Intn(5))
		}
		for _, m := range c.Materials() {
			s.Materials[m.ID] = rng.Intn(40)
		}
		s.Rupees = rng.Intn(5000)

		got := NewCalculator(c).ToMax(s)

		for id, a := range got.ByMaterial {
			assert.Greater(t, a.Needed, 0, id)
			assert.Equal(t, s.Materials[id], a.Have, id)
			assert.Equal(t, max(0, a.Needed-a.Have), a.Missing, id)
		}
		assert.Equal(t, max(0, got.Rupees.Needed-got.Rupees.Have), got.Rupees.Missing)
	}
}

func TestCalculator_ToMaxFromScratch(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	got := NewCalculator(c).ToMax(state.Seeded(c.ArmorIDs()))

	// six upgradeable pieces at 10+50+200+500 each
	assert.Equal(t, 6*760, got.Rupees.Needed)
	assert.Equal(t, 18, got.ByMaterial["bokoblin-guts"].Needed)
	assert.Equal(t, 9, got.ByMaterial["silent-princess"].Needed)
}

func TestCalculator_CustomCosts(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	costs := []domain.UpgradeCost{
		{ArmorID: "hylian-hood", Level: 1, Requirements: []domain.MaterialRequirement{req("amber", 7)}},
	}
	got := NewCalculator(c).Calculate(state.Default(), costs, Targets{"hylian-hood": 1})

	assert.Equal(t, map[string]domain.Amounts{"amber": {Have: 0, Needed: 7, Missing: 7}}, got.ByMaterial)
	assert.Equal(t, 10, got.Rupees.Needed)
}
