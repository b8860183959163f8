// internal/app/features/games/create.go
package games

import (
	"context"
	"net/http"
	"time"

	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

type gameInput struct {
	Categoria string               `json:"categoria"`
	Opponent  string               `json:"opponent"`
	Location  string               `json:"location"`
	StartsAt  time.Time            `json:"starts_at"`
	Escalacao []models.RosterEntry `json:"escalacao"`
}

func (in *gameInput) check(w http.ResponseWriter) bool {
	if in.Categoria == "" {
		apijson.Error(w, http.StatusBadRequest, "categoria is required")
		return false
	}
	if in.Opponent == "" {
		apijson.Error(w, http.StatusBadRequest, "opponent is required")
		return false
	}
	if in.StartsAt.IsZero() {
		apijson.Error(w, http.StatusBadRequest, "starts_at is required")
		return false
	}
	return true
}

// Create handles POST /games. The category must exist and be active and
// every roster entry must belong to it; the game is persisted only when
// the whole proposed roster passes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	// Persist the canonical spelling so exact-match list filters work.
	g, err := h.Games.Create(ctx, models.Game{
		Categoria: cat.Name,
		Opponent:  in.Opponent,
		Location:  in.Location,
		StartsAt:  in.StartsAt,
		Escalacao: in.Escalacao,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusCreated, g)
}
