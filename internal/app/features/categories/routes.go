// internal/app/features/categories/routes.go
package categories

import "github.com/go-chi/chi/v5"

// Routes returns the category directory subrouter, mounted under
// /categories.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.View)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/toggle", h.Toggle)
		r.Post("/recompute", h.Recompute)

		r.Get("/members", h.Members)
		r.Post("/students", h.LinkStudent)
		r.Delete("/students/{studentID}", h.UnlinkStudent)
	})

	return r
}
