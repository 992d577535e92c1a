package api

import (
	"net/http"
	"time"

	// Registers the swagger spec served under /api/swagger.
	_ "rukmini-chat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"rukmini-chat/backend/internal/interfaces"
)

// NewRouter wires all routes of the server.
func NewRouter(replyHandler *ReplyHandler, widgetHandler *WidgetHandler, sessions interfaces.SessionProvider) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The widget posts to a fixed relative path, so /chat stays unversioned.
	// No timeout: a language model may take a while.
	r.Post("/chat", replyHandler.HandleReply)

	r.Route("/api/v1/widget", func(r chi.Router) {
		r.Use(SessionMiddleware(sessions))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/state", widgetHandler.GetState)
			r.Get("/quick-replies", widgetHandler.GetQuickReplies)
			r.Post("/toggle", widgetHandler.ToggleOpen)
			r.Patch("/profile", widgetHandler.UpdateProfile)
		})

		// Waits for the reply service, so it is left without a timeout.
		r.Post("/messages", widgetHandler.SendMessage)
	})

	return r
}
