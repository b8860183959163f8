// internal/app/features/categories/list.go
package categories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// List handles GET /categories.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, cats)
}

// View handles GET /categories/{id}. The response includes the cached
// member_count and member_ids.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, cat)
}

// pathID parses the {id} URL parameter, answering 400 on a malformed
// ObjectID.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "invalid category id")
		return primitive.NilObjectID, false
	}
	return id, true
}
