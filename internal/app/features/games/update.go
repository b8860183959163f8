// internal/app/features/games/update.go
package games

import (
	"context"
	"net/http"

	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

// Update handles PUT /games/{id}. The full replacement roster is
// re-validated against the current category state, so an edit after a
// deactivation or rename fails even though the original create passed.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in gameInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	if !in.check(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.Validator.Validate(ctx, in.Categoria, in.Escalacao)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Games.Update(ctx, id, models.Game{
		Categoria: cat.Name,
		Opponent:  in.Opponent,
		Location:  in.Location,
		StartsAt:  in.StartsAt,
		Escalacao: in.Escalacao,
	}); err != nil {
		h.respondError(w, err)
		return
	}

	g, err := h.Games.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, g)
}

// Delete handles DELETE /games/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Games.Delete(ctx, id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
