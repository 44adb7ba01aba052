// internal/app/features/boards/routes.go
package boards

import "github.com/go-chi/chi/v5"

// Routes returns the /boards subrouter. Bearer auth is applied by the
// caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/invite", h.Invite)
	r.Route("/{boardID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Get("/activity", h.ActivityFeed)
		r.Get("/cards/search", h.SearchCards)
	})
	return r
}
