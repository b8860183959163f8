// internal/app/features/games/status.go
package games

import (
	"context"
	"net/http"

	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
)

type finishInput struct {
	GoalsFor  *int `json:"goals_for"`
	GoalsAway *int `json:"goals_away"`
}

// Finish handles POST /games/{id}/finish, recording the score and
// closing the game to further roster edits.
func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in finishInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	if in.GoalsFor == nil || in.GoalsAway == nil {
		apijson.Error(w, http.StatusBadRequest, "goals_for and goals_away are required")
		return
	}
	if *in.GoalsFor < 0 || *in.GoalsAway < 0 {
		apijson.Error(w, http.StatusBadRequest, "goals must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Games.Finish(ctx, id, *in.GoalsFor, *in.GoalsAway); err != nil {
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

// Cancel handles POST /games/{id}/cancel. Cancelling an already
// cancelled game succeeds; a finished game is refused.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Games.Cancel(ctx, id); err != nil {
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
