// internal/app/features/categories/delete.go
package categories

import (
	"context"
	"net/http"

	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Delete handles DELETE /categories/{id}.
//
// The cache is recomputed first so the member-count guard judges a
// fresh value rather than a stale one; the delete then refuses with
// HasMembers while any student is still linked.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Index.Recompute(ctx, id); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Categories.Delete(ctx, id); err != nil {
		h.respondError(w, err)
		return
	}

	h.Log.Info("category deleted", zap.String("category_id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
