package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rukmini-chat/backend/internal/llm"
)

// MockProvider is a testify mock of llm.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	args := m.Called(ctx, req)
	var resp *llm.ChatResponse
	if r := args.Get(0); r != nil {
		resp = r.(*llm.ChatResponse)
	}
	return resp, args.Error(1)
}

func (m *MockProvider) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// NewMockProvider creates a MockProvider whose expectations are asserted
// when the test finishes.
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
