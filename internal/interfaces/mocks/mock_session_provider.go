package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rukmini-chat/backend/internal/conversation"
)

// MockSessionProvider is a testify mock of interfaces.SessionProvider.
type MockSessionProvider struct {
	mock.Mock
}

func (m *MockSessionProvider) Get(ctx context.Context, clientID string) *conversation.Manager {
	args := m.Called(ctx, clientID)
	if v := args.Get(0); v != nil {
		return v.(*conversation.Manager)
	}
	return nil
}

func NewMockSessionProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionProvider {
	m := &MockSessionProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
