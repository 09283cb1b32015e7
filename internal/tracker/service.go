// Package tracker owns the player's state record: reads with corruption
// recovery, validated writes and shortfall planning against the catalog.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/metrics"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

// Repository stores the raw state document
type Repository interface {
	LoadState(ctx context.Context) ([]byte, error)
	SaveState(ctx context.Context, document []byte) error
	UpdatedAt(ctx context.Context) (time.Time, error)
}

// Service defines the owned-state operations
type Service interface {
	GetState(ctx context.Context) (domain.OwnedState, error)

	// SetState merges patch into the stored state. Patch rupees are ADDED
	// to the balance; use SetRupees to overwrite it.
	SetState(ctx context.Context, patch state.Patch) (domain.OwnedState, error)
	SetRupees(ctx context.Context, amount int) (domain.OwnedState, error)
	ResetToDefaults(ctx context.Context) (domain.OwnedState, error)

	ExportState(ctx context.Context) ([]byte, error)
	ImportState(ctx context.Context, data []byte) (domain.OwnedState, error)

	Shortfall(ctx context.Context, targets shortfall.Targets) (domain.Shortfall, error)
	ShortfallToMax(ctx context.Context) (domain.Shortfall, error)

	Catalog() *catalog.Catalog
	LastSaved(ctx context.Context) (time.Time, error)
	GetCacheStats() CacheStats
}

type service struct {
	mu         sync.Mutex
	repo       Repository
	catalog    *catalog.Catalog
	calculator *shortfall.Calculator
	cache      *shortfallCache
}

// NewService creates a tracker over repo and cat
func NewService(repo Repository, cat *catalog.Catalog, cacheConfig CacheConfig) Service {
	return &service{
		repo:       repo,
		catalog:    cat,
		calculator: shortfall.NewCalculator(cat),
		cache:      newShortfallCache(cacheConfig),
	}
}

func (s *service) GetState(ctx context.Context) (domain.OwnedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *service) SetState(ctx context.Context, patch state.Patch) (domain.OwnedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return domain.OwnedState{}, err
	}
	next, err := state.Merge(current, patch)
	if err != nil {
		return domain.OwnedState{}, s.reject(ctx, OpSetState, err)
	}
	if err := s.save(ctx, OpSetState, next); err != nil {
		return domain.OwnedState{}, err
	}
	return next, nil
}

func (s *service) SetRupees(ctx context.Context, amount int) (domain.OwnedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return domain.OwnedState{}, err
	}
	next, err := state.WithRupees(current, amount)
	if err != nil {
		return domain.OwnedState{}, s.reject(ctx, OpSetRupees, err)
	}
	if err := s.save(ctx, OpSetRupees, next); err != nil {
		return domain.OwnedState{}, err
	}
	return next, nil
}

func (s *service) ResetToDefaults(ctx context.Context) (domain.OwnedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := state.Seeded(s.catalog.ArmorIDs())
	if err := s.save(ctx, OpReset, next); err != nil {
		return domain.OwnedState{}, err
	}
	return next, nil
}

func (s *service) ExportState(ctx context.Context) ([]byte, error) {
	current, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return state.Encode(current)
}

// ImportState replaces the stored state with data. Nothing is written when
// data fails to parse or validate.
func (s *service) ImportState(ctx context.Context, data []byte) (domain.OwnedState, error) {
	next, err := state.Parse(data)
	if err != nil {
		return domain.OwnedState{}, s.reject(ctx, OpImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, OpImport, next); err != nil {
		return domain.OwnedState{}, err
	}
	return next, nil
}

// Shortfall plans the named pieces up to their targets and every other piece
// to its max level. Targets naming an armor id missing from the catalog fail
// with domain.ErrArmorNotFound, levels outside the global range with
// domain.ErrInvalidInput.
func (s *service) Shortfall(ctx context.Context, targets shortfall.Targets) (domain.Shortfall, error) {
	if err := s.checkTargets(targets); err != nil {
		logger.FromContext(ctx).Info(LogMsgTargetsRejected, "error", err)
		return domain.Shortfall{}, err
	}
	return s.plan(ctx, targets, false)
}

func (s *service) ShortfallToMax(ctx context.Context) (domain.Shortfall, error) {
	return s.plan(ctx, nil, true)
}

func (s *service) Catalog() *catalog.Catalog {
	return s.catalog
}

// LastSaved returns the time of the last write, zero when nothing is stored
func (s *service) LastSaved(ctx context.Context) (time.Time, error) {
	t, err := s.repo.UpdatedAt(ctx)
	if errors.Is(err, domain.ErrStateNotFound) {
		return time.Time{}, nil
	}
	return t, err
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.GetStats()
}

func (s *service) checkTargets(targets shortfall.Targets) error {
	ids := make([]string, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, ok := s.catalog.Armor(id); !ok {
			return fmt.Errorf("%w: %q", domain.ErrArmorNotFound, id)
		}
		if level := targets[id]; !level.Valid() {
			return fmt.Errorf("%w: target level %d for %q must be between %d and %d",
				domain.ErrInvalidInput, level, id, domain.LevelMin, domain.LevelMax)
		}
	}
	return nil
}

func (s *service) plan(ctx context.Context, targets shortfall.Targets, toMax bool) (domain.Shortfall, error) {
	log := logger.FromContext(ctx)

	owned, err := s.GetState(ctx)
	if err != nil {
		return domain.Shortfall{}, err
	}

	key, err := cacheKey(s.catalog.Fingerprint(), owned, targets, toMax)
	if err != nil {
		return domain.Shortfall{}, fmt.Errorf("failed to build shortfall cache key: %w", err)
	}
	if cached, ok := s.cache.Get(key); ok {
		metrics.ShortfallCacheHits.Inc()
		log.Debug(LogMsgShortfallCached, "to_max", toMax)
		return cached, nil
	}

	var result domain.Shortfall
	if toMax {
		result = s.calculator.ToMax(owned)
	} else {
		result = s.calculator.Calculate(owned, nil, targets)
	}
	metrics.ShortfallComputed.Inc()
	s.cache.Set(key, result)
	return result, nil
}

// load reads the stored record. A record that fails validation is treated as
// absent: the default state is returned and the corruption is logged.
// Callers hold s.mu.
func (s *service) load(ctx context.Context) (domain.OwnedState, error) {
	data, err := s.repo.LoadState(ctx)
	if errors.Is(err, domain.ErrStateNotFound) {
		return state.Default(), nil
	}
	if err != nil {
		return domain.OwnedState{}, fmt.Errorf("failed to load state: %w", err)
	}

	current, err := state.Parse(data)
	if err != nil {
		metrics.CorruptStateReads.Inc()
		logger.FromContext(ctx).Warn(LogMsgCorruptState, "error", fmt.Errorf("%w: %w", domain.ErrCorruptStore, err))
		return state.Default(), nil
	}
	return current, nil
}

// save persists next as the whole record. Callers hold s.mu.
func (s *service) save(ctx context.Context, op string, next domain.OwnedState) error {
	data, err := state.Encode(next)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.repo.SaveState(ctx, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	metrics.StateWrites.WithLabelValues(op).Inc()
	logger.FromContext(ctx).Debug(LogMsgStateSaved, logger.AttrKeyOperation, op, "bytes", len(data))
	return nil
}

func (s *service) reject(ctx context.Context, op string, err error) error {
	metrics.StateRejections.WithLabelValues(op).Inc()
	logger.FromContext(ctx).Info(LogMsgStateRejected, logger.AttrKeyOperation, op, "error", err)
	return err
}
