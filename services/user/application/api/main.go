package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/services/user/application/handlers"
	appsvcs "github.com/ghuser/usedmarket/services/user/application/services"
)

// UserRoutes registers signup, login, logout and current-user endpoints.
func UserRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handlers.NewSignupHandler(svcs).Execute)
		r.Post("/login", handlers.NewLoginHandler(svcs, a.SessionStore).Execute)
		r.Post("/logout", handlers.NewLogoutHandler(a.SessionStore).Execute)
		r.With(auth.RequireAuth(a.SessionStore, a.Logger)).Get("/me", handlers.NewMeHandler(svcs).Execute)
	})
}
