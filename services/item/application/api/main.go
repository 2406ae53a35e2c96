package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/services/item/application/handlers"
	appsvcs "github.com/ghuser/usedmarket/services/item/application/services"
)

// ItemRoutes registers listing endpoints on the provided chi router.
// Paths are registered flat (no sub-router) so the chat context can add
// /items/{id}/chat alongside them.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Get("/items", handlers.NewListItemsHandler(svcs).Execute)
	r.Get("/items/{id}", handlers.NewGetItemHandler(svcs).Execute)
	r.With(auth.RequireAuth(a.SessionStore, a.Logger)).Post("/items", handlers.NewPostItemHandler(svcs).Execute)
}
