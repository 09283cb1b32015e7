package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPool is a mock implementation of database.Pool
type MockPool struct {
	mock.Mock
}

func (m *MockPool) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPool) Close() error {
	args := m.Called()
	return args.Error(0)
}
