// internal/app/features/games/routes.go
package games

import "github.com/go-chi/chi/v5"

// Routes returns the game subrouter, mounted under /games.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.View)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)

		r.Post("/finish", h.Finish)
		r.Post("/cancel", h.Cancel)

		r.Post("/roster", h.AddRosterEntry)
		r.Delete("/roster/{studentID}", h.RemoveRosterEntry)
	})

	return r
}
