package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// FakeRepository is an in-memory Repository for tests.
// Set LoadErr or SaveErr to simulate storage failures.
type FakeRepository struct {
	mu        sync.Mutex
	document  []byte
	updatedAt time.Time
	saves     int

	LoadErr error
	SaveErr error
}

// NewFakeRepository returns an empty fake; document may seed the stored record
func NewFakeRepository(document []byte) *FakeRepository {
	f := &FakeRepository{}
	if document != nil {
		f.document = append([]byte(nil), document...)
		f.updatedAt = time.Now().UTC()
	}
	return f
}

func (f *FakeRepository) LoadState(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	if f.document == nil {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), f.document...), nil
}

func (f *FakeRepository) SaveState(ctx context.Context, document []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.document = append([]byte(nil), document...)
	f.updatedAt = time.Now().UTC()
	f.saves++
	return nil
}

func (f *FakeRepository) UpdatedAt(ctx context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.document == nil {
		return time.Time{}, domain.ErrStateNotFound
	}
	return f.updatedAt, nil
}

// Document returns the raw stored record, nil when nothing was saved
func (f *FakeRepository) Document() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.document...)
}

// Saves returns how many writes succeeded
func (f *FakeRepository) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}
