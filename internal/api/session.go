package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"rukmini-chat/backend/internal/conversation"
	app_errors "rukmini-chat/backend/internal/errors"
	"rukmini-chat/backend/internal/interfaces"
)

// ClientIDHeader carries the browser's stable identity. It plays the role
// of the browser widget's origin-scoped local storage.
const ClientIDHeader = "X-Client-ID"

// SessionMiddleware binds the caller's conversation to the request context.
// A request without a client id gets a fresh one, echoed in the response
// header so the widget can keep it.
func SessionMiddleware(sessions interfaces.SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := r.Header.Get(ClientIDHeader)
			if clientID == "" {
				clientID = uuid.NewString()
			} else if _, err := uuid.Parse(clientID); err != nil {
				respondWithError(w, fmt.Errorf("%w: %s must be a UUID", app_errors.ErrValidation, ClientIDHeader))
				return
			}
			w.Header().Set(ClientIDHeader, clientID)

			m := sessions.Get(r.Context(), clientID)
			next.ServeHTTP(w, r.WithContext(conversation.WithManager(r.Context(), m)))
		})
	}
}

// managerFrom fetches the bound conversation or writes an error response.
func managerFrom(w http.ResponseWriter, r *http.Request) (*conversation.Manager, bool) {
	m, ok := conversation.FromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrNoSession)
		return nil, false
	}
	return m, true
}
