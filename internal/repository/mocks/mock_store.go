package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of repository.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// NewMockStore creates a MockStore whose expectations are asserted when the
// test finishes.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	m := &MockStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
