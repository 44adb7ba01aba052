// internal/app/features/lists/routes.go
package lists

import "github.com/go-chi/chi/v5"

// Routes returns the /lists subrouter. Bearer auth is applied by the caller.
// Reorder is registered before the ID routes so "reorder" never parses as a
// list ID.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Put("/reorder", h.Reorder)
	r.Get("/{boardID}", h.ListByBoard)
	r.Put("/{listID}", h.Rename)
	r.Delete("/{listID}", h.Delete)
	return r
}
