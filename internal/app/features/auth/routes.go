// internal/app/features/auth/routes.go
package auth

import (
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /auth subrouter. Register and login are open; the rest
// requires a bearer token.
func Routes(h *Handler, tokens *sysauth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireBearer)
		r.Get("/me", h.Me)
	})
	return r
}
