package interfaces

import (
	"context"

	"rukmini-chat/backend/internal/conversation"
	"rukmini-chat/backend/internal/service"
)

// Contracts the API layer depends on, so handlers can be tested against
// mocks instead of the concrete services.

// ReplyService answers the widget's POST /chat requests.
type ReplyService interface {
	Reply(ctx context.Context, req *service.ReplyRequest) (*service.ReplyResponse, error)
}

// SessionProvider hands out the conversation of a client, creating it on
// first use. conversation.Registry implements it.
type SessionProvider interface {
	Get(ctx context.Context, clientID string) *conversation.Manager
}
