// internal/app/features/games/list.go
package games

import (
	"context"
	"net/http"

	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

// List handles GET /games. An optional ?categoria= query filters by
// category name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	games, err := h.Games.List(ctx, r.URL.Query().Get("categoria"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if games == nil {
		games = []models.Game{}
	}
	apijson.Write(w, http.StatusOK, games)
}

// View handles GET /games/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Games.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, g)
}
