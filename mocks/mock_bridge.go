package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/koscheiundead/totkaa-v2/internal/bridge"
	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

// MockBridge is a mock implementation of bridge.Bridge
type MockBridge struct {
	mock.Mock
}

var _ bridge.Bridge = (*MockBridge)(nil)

func (m *MockBridge) Ping(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockBridge) GetState(ctx context.Context) (domain.OwnedState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.OwnedState), args.Error(1)
}

func (m *MockBridge) SetState(ctx context.Context, patch state.Patch) (domain.OwnedState, error) {
	args := m.Called(ctx, patch)
	return args.Get(0).(domain.OwnedState), args.Error(1)
}

func (m *MockBridge) SetRupees(ctx context.Context, amount int) (domain.OwnedState, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(domain.OwnedState), args.Error(1)
}

func (m *MockBridge) ResetToDefaults(ctx context.Context) (domain.OwnedState, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.OwnedState), args.Error(1)
}

func (m *MockBridge) ExportState(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBridge) ImportState(ctx context.Context, data []byte) (domain.OwnedState, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(domain.OwnedState), args.Error(1)
}

func (m *MockBridge) ExportToFile(ctx context.Context, dialog bridge.FileDialog) (bridge.ExportResult, error) {
	args := m.Called(ctx, dialog)
	return args.Get(0).(bridge.ExportResult), args.Error(1)
}

func (m *MockBridge) ImportFromFile(ctx context.Context, dialog bridge.FileDialog) (bridge.ImportResult, error) {
	args := m.Called(ctx, dialog)
	return args.Get(0).(bridge.ImportResult), args.Error(1)
}

func (m *MockBridge) Shortfall(ctx context.Context, targets shortfall.Targets) (domain.Shortfall, error) {
	args := m.Called(ctx, targets)
	return args.Get(0).(domain.Shortfall), args.Error(1)
}

func (m *MockBridge) ShortfallToMax(ctx context.Context) (domain.Shortfall, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Shortfall), args.Error(1)
}

func (m *MockBridge) Catalog(ctx context.Context) catalog.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(catalog.Snapshot)
}
