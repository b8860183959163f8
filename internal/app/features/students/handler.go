// internal/app/features/students/handler.go
package students

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	studentstore "github.com/pbfagundes/escolinha/internal/app/store/students"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/membership"
	"go.uber.org/zap"
)

// Handler serves the student endpoints. Student create/update is the
// legacy path that may write the scalar category field directly,
// bypassing the categories list; that behavior is preserved for older
// UI code, and the affected category caches are recomputed eagerly
// afterwards.
type Handler struct {
	Students   *studentstore.Store
	Categories *categorystore.Store
	Index      *membership.Index
	Log        *zap.Logger
}

func NewHandler(students *studentstore.Store, categories *categorystore.Store, index *membership.Index, logger *zap.Logger) *Handler {
	return &Handler{
		Students:   students,
		Categories: categories,
		Index:      index,
		Log:        logger,
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, studentstore.ErrStudentNotFound):
		apijson.Error(w, http.StatusNotFound, err.Error())
	default:
		h.Log.Error("student operation failed", zap.Error(err))
		apijson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID parses the {id} URL parameter, answering 400 on a malformed
// uuid.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "invalid student id")
		return uuid.Nil, false
	}
	return id, true
}
