package tracker

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
)

// CacheConfig sizes the shortfall cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CacheStats reports shortfall cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// shortfallCache memoises calculator results for a given owned state, target
// set and catalog. Entries are never invalidated on write: a changed state
// hashes to a different key and the stale entry ages out.
type shortfallCache struct {
	lru    *expirable.LRU[string, domain.Shortfall]
	hits   atomic.Int64
	misses atomic.Int64
}

func newShortfallCache(config CacheConfig) *shortfallCache {
	size := config.Size
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &shortfallCache{
		lru: expirable.NewLRU[string, domain.Shortfall](size, nil, ttl),
	}
}

// Get returns a copy of the cached shortfall for key
func (c *shortfallCache) Get(key string) (domain.Shortfall, bool) {
	s, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return domain.Shortfall{}, false
	}
	c.hits.Add(1)
	return copyShortfall(s), true
}

// Set stores a copy of s under key
func (c *shortfallCache) Set(key string, s domain.Shortfall) {
	c.lru.Add(key, copyShortfall(s))
}

// Clear removes all entries
func (c *shortfallCache) Clear() {
	c.lru.Purge()
}

// GetStats returns hit, miss and size counters
func (c *shortfallCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}

type cacheKeyInput struct {
	Schema  string            `json:"schema"`
	Catalog string            `json:"catalog"`
	State   domain.OwnedState `json:"state"`
	ToMax   bool              `json:"toMax"`
	Targets shortfall.Targets `json:"targets,omitempty"`
}

// cacheKey hashes everything the calculator output depends on.
// encoding/json writes map keys sorted, so equal inputs give equal keys.
func cacheKey(fingerprint string, owned domain.OwnedState, targets shortfall.Targets, toMax bool) (string, error) {
	data, err := json.Marshal(cacheKeyInput{
		Schema:  CacheSchemaVersion,
		Catalog: fingerprint,
		State:   owned,
		ToMax:   toMax,
		Targets: targets,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func copyShortfall(s domain.Shortfall) domain.Shortfall {
	out := domain.Shortfall{
		ByMaterial: make(map[string]domain.Amounts, len(s.ByMaterial)),
		Rupees:     s.Rupees,
	}
	for id, a := range s.ByMaterial {
		out.ByMaterial[id] = a
	}
	return out
}
