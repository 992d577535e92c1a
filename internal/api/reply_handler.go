package api

import (
	"net/http"

	"rukmini-chat/backend/internal/interfaces"
	"rukmini-chat/backend/internal/service"
)

// ReplyHandler serves the widget's reply endpoint.
type ReplyHandler struct {
	service interfaces.ReplyService
}

func NewReplyHandler(svc interfaces.ReplyService) *ReplyHandler {
	return &ReplyHandler{service: svc}
}

// HandleReply godoc
// @Summary      Reply to a user message
// @Description  Computes the assistant's answer to one utterance, taking the user's gender and mood into account.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      service.ReplyRequest  true  "User message"
// @Success      200      {object}  service.ReplyResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /chat [post]
func (h *ReplyHandler) HandleReply(w http.ResponseWriter, r *http.Request) {
	var req service.ReplyRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.service.Reply(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}
