package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/services/chat/application/handlers"
	appsvcs "github.com/ghuser/usedmarket/services/chat/application/services"
)

// ChatRoutes registers the per-listing chat endpoints. Both require a session.
func ChatRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		r.Get("/items/{id}/chat", handlers.NewGetThreadHandler(svcs).Execute)
		r.Post("/items/{id}/chat", handlers.NewPostMessageHandler(svcs).Execute)
	})
}
