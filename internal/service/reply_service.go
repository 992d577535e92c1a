package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	app_errors "rukmini-chat/backend/internal/errors"
	"rukmini-chat/backend/internal/llm"
	"rukmini-chat/backend/internal/reply"
)

// ReplyRequest is the body of POST /chat as sent by the widget.
type ReplyRequest struct {
	Message string `json:"message" validate:"required,max=4000" example:"How can I save money?"`
	Gender  string `json:"gender" validate:"omitempty,oneof=male female neutral" example:"female"`
	Mood    string `json:"mood" validate:"max=64" example:"neutral"`
}

// ReplyResponse is the body returned by POST /chat.
type ReplyResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// ReplyService computes the assistant's answer for the /chat endpoint. It
// asks the language model first and falls back to canned answers, so the
// widget always receives a reply.
type ReplyService struct {
	llm          llm.Provider
	model        string
	systemPrompt string
	fallback     *reply.CannedClient
	now          func() time.Time
}

// NewReplyService creates the service. A nil provider means canned answers
// only.
func NewReplyService(provider llm.Provider, model, systemPrompt string) *ReplyService {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &ReplyService{
		llm:          provider,
		model:        model,
		systemPrompt: systemPrompt,
		fallback:     reply.NewCannedClient(""),
		now:          time.Now,
	}
}

func (s *ReplyService) Reply(ctx context.Context, req *ReplyRequest) (*ReplyResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", app_errors.ErrValidation)
	}

	answer := s.generate(ctx, text, req.Gender, req.Mood)
	return &ReplyResponse{
		Response:  answer,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	}, nil
}

func (s *ReplyService) generate(ctx context.Context, text, gender, mood string) string {
	if s.llm == nil {
		return s.fallback.Respond(text)
	}

	resp, err := s.llm.Chat(ctx, &llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: s.buildSystemPrompt(gender, mood)},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		slog.Warn("Language model failed, answering with canned reply", "error", err)
		return s.fallback.Respond(text)
	}

	answer := strings.TrimSpace(resp.Message.Content)
	if answer == "" {
		slog.Warn("Language model returned an empty reply, answering with canned reply", "model", s.model)
		return s.fallback.Respond(text)
	}
	return answer
}

func (s *ReplyService) buildSystemPrompt(gender, mood string) string {
	var b strings.Builder
	b.WriteString(s.systemPrompt)
	if gender != "" || mood != "" {
		b.WriteString("\n\nAbout the user:")
		if gender != "" {
			fmt.Fprintf(&b, "\n- gender: %s", gender)
		}
		if mood != "" {
			fmt.Fprintf(&b, "\n- current mood: %s", mood)
		}
	}
	return b.String()
}
