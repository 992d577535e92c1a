package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rukmini-chat/backend/internal/reply"
)

// MockClient is a testify mock of reply.Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Send(ctx context.Context, req *reply.Request) (*reply.Payload, error) {
	args := m.Called(ctx, req)
	var payload *reply.Payload
	if p := args.Get(0); p != nil {
		payload = p.(*reply.Payload)
	}
	return payload, args.Error(1)
}

// NewMockClient creates a MockClient whose expectations are asserted when
// the test finishes.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
