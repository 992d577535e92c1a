package api

import (
	"net/http"

	"rukmini-chat/backend/internal/model"
)

// WidgetHandler exposes one client's conversation to the presentation layer.
// It expects SessionMiddleware to have bound the conversation.
type WidgetHandler struct{}

func NewWidgetHandler() *WidgetHandler {
	return &WidgetHandler{}
}

// SendMessageRequest is the body of POST /widget/messages. Blank text is
// accepted and ignored, like in the widget.
type SendMessageRequest struct {
	Text string `json:"text" validate:"max=4000" example:"How can I save money?"`
}

// ToggleRequest is the optional body of POST /widget/toggle. Without Open
// the flag is flipped.
type ToggleRequest struct {
	Open *bool `json:"open,omitempty"`
}

// ProfileUpdateRequest is the body of PATCH /widget/profile. Unknown gender
// values are not rejected here; the conversation keeps the previous one.
type ProfileUpdateRequest struct {
	Gender      *string `json:"gender,omitempty" example:"female"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100" example:"Asha"`
	Mood        *string `json:"mood,omitempty" validate:"omitempty,max=64" example:"stressed"`
	WisdomLevel *int    `json:"wisdomLevel,omitempty"`
	XP          *int    `json:"xp,omitempty"`
}

func (p ProfileUpdateRequest) toModel() model.ProfileUpdate {
	u := model.ProfileUpdate{
		Name:        p.Name,
		Mood:        p.Mood,
		WisdomLevel: p.WisdomLevel,
		XP:          p.XP,
	}
	if p.Gender != nil {
		g := model.Gender(*p.Gender)
		u.Gender = &g
	}
	return u
}

// GetState godoc
// @Summary      Get conversation state
// @Description  Returns messages, open and typing flags, profile, display config and quick replies.
// @Tags         Widget
// @Produce      json
// @Param        X-Client-ID  header    string  false  "Client id (UUID)"
// @Success      200          {object}  model.Snapshot
// @Router       /api/v1/widget/state [get]
func (h *WidgetHandler) GetState(w http.ResponseWriter, r *http.Request) {
	m, ok := managerFrom(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, m.Snapshot())
}

// SendMessage godoc
// @Summary      Send a user message
// @Description  Appends the message, waits for the assistant's reply and returns the new state.
// @Tags         Widget
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header    string              false  "Client id (UUID)"
// @Param        request      body      SendMessageRequest  true   "Message"
// @Success      200          {object}  model.Snapshot
// @Failure      400          {object}  ErrorResponse
// @Router       /api/v1/widget/messages [post]
func (h *WidgetHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	m, ok := managerFrom(w, r)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}

	m.SendMessage(r.Context(), req.Text)
	respondWithJSON(w, http.StatusOK, m.Snapshot())
}

// ToggleOpen godoc
// @Summary      Open or close the widget
// @Tags         Widget
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header    string         false  "Client id (UUID)"
// @Param        request      body      ToggleRequest  false  "Forced state"
// @Success      200          {object}  OpenStateResponse
// @Failure      400          {object}  ErrorResponse
// @Router       /api/v1/widget/toggle [post]
func (h *WidgetHandler) ToggleOpen(w http.ResponseWriter, r *http.Request) {
	m, ok := managerFrom(w, r)
	if !ok {
		return
	}
	var req ToggleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, OpenStateResponse{IsOpen: m.ToggleOpen(r.Context(), req.Open)})
}

// UpdateProfile godoc
// @Summary      Update the user profile
// @Description  Merges the given fields into the profile. A gender change also changes the assistant persona.
// @Tags         Widget
// @Accept       json
// @Produce      json
// @Param        X-Client-ID  header    string                false  "Client id (UUID)"
// @Param        request      body      ProfileUpdateRequest  true   "Fields to change"
// @Success      200          {object}  model.UserProfile
// @Failure      400          {object}  ErrorResponse
// @Router       /api/v1/widget/profile [patch]
func (h *WidgetHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	m, ok := managerFrom(w, r)
	if !ok {
		return
	}
	var req ProfileUpdateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, m.UpdateUserProfile(r.Context(), req.toModel()))
}

// GetQuickReplies godoc
// @Summary      List quick replies
// @Tags         Widget
// @Produce      json
// @Param        X-Client-ID  header    string  false  "Client id (UUID)"
// @Success      200          {array}   model.QuickReply
// @Router       /api/v1/widget/quick-replies [get]
func (h *WidgetHandler) GetQuickReplies(w http.ResponseWriter, r *http.Request) {
	m, ok := managerFrom(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, m.QuickReplies())
}
