// internal/app/features/categories/update.go
package categories

import (
	"context"
	"net/http"
	"strings"

	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/htmlsanitize"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
)

type updateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	MinAge      *int   `json:"min_age"`
	MaxAge      *int   `json:"max_age"`
}

// Update handles PUT /categories/{id}. A name change routes through
// the rename propagator so every student reference is rewritten with
// it, or nothing changes at all. The rename runs before the
// descriptive-field write so a rejected name leaves the stored record
// exactly as it was.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in updateCategoryInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	if err := categorystore.ValidateAgeBounds(in.MinAge, in.MaxAge); err != nil {
		h.respondError(w, err)
		return
	}

	// Rename propagation touches every affected student record.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if name := strings.TrimSpace(in.Name); name != "" && name != cat.Name {
		if _, err := h.Renames.Rename(ctx, id, name); err != nil {
			h.respondError(w, err)
			return
		}
	}

	if err := h.Categories.UpdateInfo(ctx, id,
		htmlsanitize.Sanitize(in.Description), in.Color, in.MinAge, in.MaxAge); err != nil {
		h.respondError(w, err)
		return
	}

	updated, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, updated)
}

// Toggle handles POST /categories/{id}/toggle, flipping the soft
// active flag. Rosters of already-scheduled games are left alone; they
// are re-validated only on their next write.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cat, err := h.Categories.ToggleActive(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, cat)
}
