// internal/app/features/games/roster.go
package games

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	gamestore "github.com/pbfagundes/escolinha/internal/app/store/games"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/roster"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

type rosterEntryInput struct {
	StudentID string `json:"student_id"`
	Position  string `json:"position"`
}

// AddRosterEntry handles POST /games/{id}/roster. The student is
// checked against the game's current category; adding someone already
// rostered is a no-op that still answers 200.
func (h *Handler) AddRosterEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in rosterEntryInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	if in.StudentID == "" {
		apijson.Error(w, http.StatusBadRequest, "student_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Games.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !g.Editable() {
		h.respondError(w, gamestore.ErrNotEditable)
		return
	}

	if err := h.Validator.ValidateOne(ctx, g.Categoria, in.StudentID); err != nil {
		h.respondError(w, err)
		return
	}

	entries := roster.AddEntry(g.Escalacao, models.RosterEntry{
		StudentID: in.StudentID,
		Position:  in.Position,
	})
	if err := h.Games.ReplaceRoster(ctx, id, entries); err != nil {
		h.respondError(w, err)
		return
	}

	g, err = h.Games.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, g)
}

// RemoveRosterEntry handles DELETE /games/{id}/roster/{studentID}.
// Removing a student who is not rostered is a no-op.
func (h *Handler) RemoveRosterEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	studentID := chi.URLParam(r, "studentID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Games.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !g.Editable() {
		h.respondError(w, gamestore.ErrNotEditable)
		return
	}

	entries := roster.RemoveEntry(g.Escalacao, studentID)
	if err := h.Games.ReplaceRoster(ctx, id, entries); err != nil {
		h.respondError(w, err)
		return
	}

	g, err = h.Games.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, g)
}
