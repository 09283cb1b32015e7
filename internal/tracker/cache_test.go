package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
)

func TestShortfallCache_Stats(t *testing.T) {
	cache := newShortfallCache(CacheConfig{Size: 10, TTL: time.Minute})

	assert.Equal(t, CacheStats{}, cache.GetStats())

	_, found := cache.Get("missing")
	assert.False(t, found)

	cache.Set("k", domain.Shortfall{ByMaterial: map[string]domain.Amounts{}})
	_, found = cache.Get("k")
	assert.True(t, found)

	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Size: 1}, cache.GetStats())

	cache.Clear()
	assert.Equal(t, 0, cache.GetStats().Size)
}

func TestShortfallCache_Eviction(t *testing.T) {
	cache := newShortfallCache(CacheConfig{Size: 2, TTL: time.Minute})

	cache.Set("a", domain.Shortfall{})
	cache.Set("b", domain.Shortfall{})
	cache.Set("c", domain.Shortfall{})

	_, found := cache.Get("a")
	assert.False(t, found)
	assert.Equal(t, 2, cache.GetStats().Size)
}

func TestShortfallCache_Defaults(t *testing.T) {
	cache := newShortfallCache(CacheConfig{})

	for i := 0; i < DefaultCacheSize+5; i++ {
		cache.Set(string(rune('a'+i)), domain.Shortfall{})
	}
	assert.Equal(t, DefaultCacheSize, cache.GetStats().Size)
}

func TestCacheKey(t *testing.T) {
	owned := domain.OwnedState{
		Materials:   map[string]int{"amber": 1, "flint": 2},
		ArmorLevels: map[string]domain.Level{"hylian-hood": 1},
	}

	base, err := cacheKey("fp", owned, shortfall.Targets{"hylian-hood": 3}, false)
	require.NoError(t, err)

	same, err := cacheKey("fp", owned.Clone(), shortfall.Targets{"hylian-hood": 3}, false)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	tests := []struct {
		name        string
		fingerprint string
		owned       domain.OwnedState
		targets     shortfall.Targets
		toMax       bool
	}{
		{name: "catalog changed", fingerprint: "other", owned: owned, targets: shortfall.Targets{"hylian-hood": 3}},
		{name: "state changed", fingerprint: "fp", owned: domain.OwnedState{Rupees: 1}, targets: shortfall.Targets{"hylian-hood": 3}},
		{name: "targets changed", fingerprint: "fp", owned: owned, targets: shortfall.Targets{"hylian-hood": 2}},
		{name: "to max", fingerprint: "fp", owned: owned, toMax: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := cacheKey(tt.fingerprint, tt.owned, tt.targets, tt.toMax)
			require.NoError(t, err)
			assert.NotEqual(t, base, key)
		})
	}
}
