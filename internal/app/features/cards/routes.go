// internal/app/features/cards/routes.go
package cards

import "github.com/go-chi/chi/v5"

// Routes returns the /cards subrouter. Bearer auth is applied by the caller.
// The fixed paths (move, assign, label) are registered before the ID routes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.ListByList)
	r.Put("/move", h.Move)
	r.Put("/assign", h.Assign)
	r.Put("/label", h.Label)
	r.Route("/{cardID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/comments", h.AddComment)
		r.Get("/comments", h.ListComments)
		r.Delete("/comments/{commentID}", h.DeleteComment)
	})
	return r
}
