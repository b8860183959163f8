// internal/app/features/students/students.go
package students

import (
	"context"
	"net/http"
	"time"

	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.uber.org/zap"
)

type studentInput struct {
	FullName  string  `json:"full_name"`
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD
	Guardian  string  `json:"guardian"`
	Phone     string  `json:"phone"`
	Category  *string `json:"category"` // legacy scalar, optional
}

func (in *studentInput) birthDate(w http.ResponseWriter) (time.Time, bool) {
	if in.FullName == "" {
		apijson.Error(w, http.StatusBadRequest, "full_name is required")
		return time.Time{}, false
	}
	bd, err := time.Parse("2006-01-02", in.BirthDate)
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return bd, true
}

// Create handles POST /students. A legacy caller may set the scalar
// category at creation without going through the link operation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in studentInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	bd, ok := in.birthDate(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Students.Create(ctx, models.Student{
		FullName:  in.FullName,
		BirthDate: bd,
		Guardian:  in.Guardian,
		Phone:     in.Phone,
		Category:  in.Category,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.recomputeByName(ctx, in.Category)
	apijson.Write(w, http.StatusCreated, st)
}

// List handles GET /students.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sts, err := h.Students.List(ctx)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if sts == nil {
		sts = []models.Student{}
	}
	apijson.Write(w, http.StatusOK, sts)
}

// View handles GET /students/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Students.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, st)
}

// Update handles PUT /students/{id}. Setting "category" here is the
// legacy scalar write; both the previous and the new category's caches
// are recomputed so neither goes stale.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in studentInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	bd, ok := in.birthDate(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	before, err := h.Students.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Students.UpdateInfo(ctx, id, in.FullName, bd, in.Guardian, in.Phone, in.Category); err != nil {
		h.respondError(w, err)
		return
	}

	if in.Category != nil {
		h.recomputeByName(ctx, before.Category)
		h.recomputeByName(ctx, in.Category)
	}

	st, err := h.Students.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, st)
}

// Delete handles DELETE /students/{id}. The caches of the student's
// categories are recomputed after the record is gone.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	st, err := h.Students.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Students.Delete(ctx, id); err != nil {
		h.respondError(w, err)
		return
	}

	for i := range st.Categories {
		h.recomputeByName(ctx, &st.Categories[i])
	}
	h.recomputeByName(ctx, st.Category)

	w.WriteHeader(http.StatusNoContent)
}

// recomputeByName refreshes the cache of the named category when the
// name resolves. A name that no longer denotes a category is ignored:
// the legacy scalar may hold such values and that is tolerated.
func (h *Handler) recomputeByName(ctx context.Context, name *string) {
	if name == nil || *name == "" {
		return
	}
	cat, err := h.Categories.GetByName(ctx, *name)
	if err != nil {
		return
	}
	if _, err := h.Index.Recompute(ctx, cat.ID); err != nil {
		h.Log.Warn("recompute failed",
			zap.String("category", cat.Name),
			zap.Error(err))
	}
}
