// internal/app/features/trainings/routes.go
package trainings

import "github.com/go-chi/chi/v5"

// Routes returns the training subrouter, mounted under /trainings.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.View)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})

	return r
}
