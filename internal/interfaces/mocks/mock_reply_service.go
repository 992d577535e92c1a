package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rukmini-chat/backend/internal/service"
)

// MockReplyService is a testify mock of interfaces.ReplyService.
type MockReplyService struct {
	mock.Mock
}

func (m *MockReplyService) Reply(ctx context.Context, req *service.ReplyRequest) (*service.ReplyResponse, error) {
	args := m.Called(ctx, req)
	var resp *service.ReplyResponse
	if r := args.Get(0); r != nil {
		resp = r.(*service.ReplyResponse)
	}
	return resp, args.Error(1)
}

func NewMockReplyService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReplyService {
	m := &MockReplyService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
