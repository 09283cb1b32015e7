package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
	"github.com/koscheiundead/totkaa-v2/internal/state"
	"github.com/koscheiundead/totkaa-v2/internal/testing/leaktest"
)

func newTestService(t *testing.T, document []byte) (Service, *FakeRepository) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	repo := NewFakeRepository(document)
	return NewService(repo, cat, CacheConfig{Size: 8}), repo
}

func TestGetState_NoRecordReturnsDefaults(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.GetState(context.Background())

	require.NoError(t, err)
	assert.Equal(t, state.Default(), got)
}

func TestGetState_CorruptRecordReturnsDefaults(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{name: "negative material", document: `{"materials":{"amber":-1}}`},
		{name: "level out of range", document: `{"armorLevels":{"hylian-hood":5}}`},
		{name: "malformed json", document: `{"materials":`},
		{name: "not an object", document: `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t, []byte(tt.document))
			before := testutil.ToFloat64(metrics.CorruptStateReads)

			got, err := svc.GetState(context.Background())

			require.NoError(t, err)
			assert.Equal(t, state.Default(), got)
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.CorruptStateReads))
			assert.Equal(t, tt.document, string(repo.Document()), "reads never rewrite the record")
		})
	}
}

func TestGetState_StorageErrorIsReturned(t *testing.T) {
	svc, repo := newTestService(t, nil)
	repo.LoadErr = errors.New("disk unplugged")

	_, err := svc.GetState(context.Background())

	assert.ErrorContains(t, err, "disk unplugged")
}

func TestSetState_MergesKeyByKey(t *testing.T) {
	svc, repo := newTestService(t, []byte(`{"materials":{"lizalfos-horn":2},"armorLevels":{"hylian-hood":1},"rupees":30}`))

	got, err := svc.SetState(context.Background(), state.NewPatch().WithMaterial("silent-princess", 5))

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"silent-princess": 5, "lizalfos-horn": 2}, got.Materials)
	assert.Equal(t, map[string]domain.Level{"hylian-hood": 1}, got.ArmorLevels)
	assert.Equal(t, 30, got.Rupees)

	stored, err := state.Parse(repo.Document())
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestSetState_RupeesAreADelta(t *testing.T) {
	svc, _ := newTestService(t, []byte(`{"rupees":100}`))

	got, err := svc.SetState(context.Background(), state.NewPatch().WithRupeeDelta(-40))
	require.NoError(t, err)
	assert.Equal(t, 60, got.Rupees)

	got, err = svc.SetState(context.Background(), state.NewPatch().WithRupeeDelta(15))
	require.NoError(t, err)
	assert.Equal(t, 75, got.Rupees)
}

func TestSetState_InvalidPatchWritesNothing(t *testing.T) {
	original := `{"materials":{"amber":1},"armorLevels":{},"rupees":10}`
	tests := []struct {
		name  string
		patch state.Patch
	}{
		{name: "level above max", patch: state.NewPatch().WithArmorLevel("hylian-hood", 7)},
		{name: "negative quantity", patch: state.NewPatch().WithMaterial("amber", -2)},
		{name: "overspend", patch: state.NewPatch().WithRupeeDelta(-11)},
		{name: "non numeric quantity", patch: state.Patch{Materials: map[string]interface{}{"amber": "lots"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t, []byte(original))
			before := testutil.ToFloat64(metrics.StateRejections.WithLabelValues(OpSetState))

			_, err := svc.SetState(context.Background(), tt.patch)

			assert.ErrorIs(t, err, domain.ErrInvalidState)
			assert.Equal(t, 0, repo.Saves())
			assert.Equal(t, original, string(repo.Document()))
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.StateRejections.WithLabelValues(OpSetState)))
		})
	}
}

func TestSetState_SaveErrorIsReturned(t *testing.T) {
	svc, repo := newTestService(t, nil)
	repo.SaveErr = errors.New("read-only filesystem")

	got, err := svc.SetState(context.Background(), state.NewPatch().WithMaterial("amber", 1))

	assert.ErrorContains(t, err, "read-only filesystem")
	assert.Equal(t, domain.OwnedState{}, got)
}

func TestSetState_ConcurrentDeltasAreSerialised(t *testing.T) {
	svc, _ := newTestService(t, nil)
	const writers = 50

	leaktest.CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.SetState(context.Background(), state.NewPatch().WithRupeeDelta(1))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})

	got, err := svc.GetState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, writers, got.Rupees)
}

func TestSetRupees_ReplacesBalance(t *testing.T) {
	svc, _ := newTestService(t, []byte(`{"materials":{"amber":3},"rupees":100}`))

	got, err := svc.SetRupees(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 7, got.Rupees)
	assert.Equal(t, map[string]int{"amber": 3}, got.Materials)

	_, err = svc.SetRupees(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestWrites_AboveMaxQuantityKeepStoredState(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, nil)
	_, err := svc.SetState(ctx, state.NewPatch().WithMaterial("amber", 7).WithRupeeDelta(state.MaxQuantity-10))
	require.NoError(t, err)
	saved := string(repo.Document())

	tests := []struct {
		name  string
		write func() error
	}{
		{name: "set rupees", write: func() error {
			_, err := svc.SetRupees(ctx, 3_000_000_000)
			return err
		}},
		{name: "rupee delta overflows balance", write: func() error {
			_, err := svc.SetState(ctx, state.NewPatch().WithRupeeDelta(11))
			return err
		}},
		{name: "material count", write: func() error {
			_, err := svc.SetState(ctx, state.NewPatch().WithMaterial("amber", state.MaxQuantity+1))
			return err
		}},
		{name: "import", write: func() error {
			_, err := svc.ImportState(ctx, []byte(`{"rupees":3000000000}`))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.write(), domain.ErrInvalidState)
			assert.Equal(t, saved, string(repo.Document()))
		})
	}

	got, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"amber": 7}, got.Materials)
	assert.Equal(t, state.MaxQuantity-10, got.Rupees)

	got, err = svc.SetState(ctx, state.NewPatch().WithRupeeDelta(10))
	require.NoError(t, err)
	assert.Equal(t, state.MaxQuantity, got.Rupees)

	reread, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, reread)
}

func TestResetToDefaults_SeedsCatalogIDs(t *testing.T) {
	svc, _ := newTestService(t, []byte(`{"materials":{"amber":3},"armorLevels":{"hylian-hood":2},"rupees":100}`))

	got, err := svc.ResetToDefaults(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got.Materials)
	assert.Zero(t, got.Rupees)
	assert.Len(t, got.ArmorLevels, len(svc.Catalog().ArmorIDs()))
	for _, level := range got.ArmorLevels {
		assert.Equal(t, domain.Level(0), level)
	}
}

func TestImportState_CoercesNumericStrings(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.ImportState(context.Background(), []byte(`{"materials":{"x":"5"}}`))

	require.NoError(t, err)
	assert.Equal(t, 5, got.Materials["x"])
}

func TestImportState_RejectsLevelAboveMax(t *testing.T) {
	original := `{"materials":{"amber":1},"armorLevels":{},"rupees":0}`
	svc, repo := newTestService(t, []byte(original))

	_, err := svc.ImportState(context.Background(), []byte(`{"armorLevels":{"x":7}}`))

	var verr *state.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), "armorLevels.x")
	assert.Equal(t, original, string(repo.Document()))
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t, []byte(`{"materials":{"amber":3,"flint":1},"armorLevels":{"hylian-hood":2},"rupees":40}`))
	ctx := context.Background()

	before, err := svc.GetState(ctx)
	require.NoError(t, err)
	exported, err := svc.ExportState(ctx)
	require.NoError(t, err)

	_, err = svc.ResetToDefaults(ctx)
	require.NoError(t, err)
	imported, err := svc.ImportState(ctx, exported)
	require.NoError(t, err)

	assert.Equal(t, before, imported)
}

func TestShortfallToMax_FromScratch(t *testing.T) {
	svc, _ := newTestService(t, nil)

	got, err := svc.ShortfallToMax(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.NewAmounts(0, 6*760), got.Rupees)
	assert.Equal(t, 9, got.ByMaterial["silent-princess"].Missing)
	assert.Equal(t, 18, got.ByMaterial["bokoblin-guts"].Needed)
}

func TestShortfall_Targets(t *testing.T) {
	svc, _ := newTestService(t, nil)

	targets := shortfall.Targets{}
	for _, id := range svc.Catalog().ArmorIDs() {
		targets[id] = 0
	}
	targets["barbarian-helm"] = 1

	got, err := svc.Shortfall(context.Background(), targets)

	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Amounts{"silent-princess": domain.NewAmounts(0, 3)}, got.ByMaterial)
	assert.Equal(t, domain.NewAmounts(0, 10), got.Rupees)
}

func TestShortfall_RejectsBadTargets(t *testing.T) {
	tests := []struct {
		name    string
		targets shortfall.Targets
		want    error
	}{
		{name: "unknown armor id", targets: shortfall.Targets{"barbarian-helm": 1, "ghost-armor": 2}, want: domain.ErrArmorNotFound},
		{name: "level above global max", targets: shortfall.Targets{"barbarian-helm": 5}, want: domain.ErrInvalidInput},
		{name: "negative level", targets: shortfall.Targets{"barbarian-helm": -1}, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, nil)

			_, err := svc.Shortfall(context.Background(), tt.targets)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int64(0), svc.GetCacheStats().Misses)
		})
	}
}

func TestShortfall_CachedUntilStateChanges(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	hitsBefore := testutil.ToFloat64(metrics.ShortfallCacheHits)

	first, err := svc.ShortfallToMax(ctx)
	require.NoError(t, err)
	second, err := svc.ShortfallToMax(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Size: 1}, svc.GetCacheStats())
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metrics.ShortfallCacheHits))

	_, err = svc.SetState(ctx, state.NewPatch().WithMaterial("silent-princess", 9))
	require.NoError(t, err)
	third, err := svc.ShortfallToMax(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, third.ByMaterial["silent-princess"].Missing)
	assert.Equal(t, int64(2), svc.GetCacheStats().Misses)
}

func TestShortfall_CallerCannotCorruptCache(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.ShortfallToMax(ctx)
	require.NoError(t, err)
	first.ByMaterial["silent-princess"] = domain.NewAmounts(0, 0)

	second, err := svc.ShortfallToMax(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, second.ByMaterial["silent-princess"].Needed)
}

func TestLastSaved(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	saved, err := svc.LastSaved(ctx)
	require.NoError(t, err)
	assert.True(t, saved.IsZero())

	_, err = svc.SetRupees(ctx, 1)
	require.NoError(t, err)

	saved, err = svc.LastSaved(ctx)
	require.NoError(t, err)
	assert.False(t, saved.IsZero())
}
