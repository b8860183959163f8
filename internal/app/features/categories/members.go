// internal/app/features/categories/members.go
package categories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Members handles GET /categories/{id}/members: the derived member id
// set, recomputed on demand so the answer is always fresh.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := h.Index.Recompute(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, map[string]any{
		"member_ids":   ids,
		"member_count": len(ids),
	})
}

// Recompute handles POST /categories/{id}/recompute, a repair entry
// point for the derived cache. Safe to call repeatedly.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	h.Members(w, r)
}

type linkStudentInput struct {
	StudentID string `json:"student_id"`
}

// LinkStudent handles POST /categories/{id}/students, adding the
// student to this category. The student record gains a list entry (and
// the legacy scalar when unset) with the category's canonical name;
// the cache is recomputed eagerly.
func (h *Handler) LinkStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in linkStudentInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	studentID, err := uuid.Parse(in.StudentID)
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if _, err := h.Students.Link(ctx, studentID, cat.Name); err != nil {
		h.respondError(w, err)
		return
	}
	if _, err := h.Index.Recompute(ctx, id); err != nil {
		h.respondError(w, err)
		return
	}

	h.Log.Info("student linked",
		zap.String("category", cat.Name),
		zap.String("student_id", studentID.String()))

	updated, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, updated)
}

// UnlinkStudent handles DELETE /categories/{id}/students/{studentID}.
// Removing a student who is not linked is a no-op; the legacy scalar
// falls back to the first remaining list entry, or clears.
func (h *Handler) UnlinkStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	studentID, err := uuid.Parse(chi.URLParam(r, "studentID"))
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if _, err := h.Students.Unlink(ctx, studentID, cat.Name); err != nil {
		h.respondError(w, err)
		return
	}
	if _, err := h.Index.Recompute(ctx, id); err != nil {
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
