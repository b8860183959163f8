// internal/app/features/categories/handler.go
package categories

import (
	"errors"
	"net/http"

	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	studentstore "github.com/pbfagundes/escolinha/internal/app/store/students"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/membership"
	"github.com/pbfagundes/escolinha/internal/app/system/renames"
	"go.uber.org/zap"
)

// Handler serves the category directory endpoints. Renames are routed
// through the propagator so student records stay consistent, and every
// membership-changing operation recomputes the derived cache eagerly.
type Handler struct {
	Categories *categorystore.Store
	Students   *studentstore.Store
	Index      *membership.Index
	Renames    *renames.Propagator
	Log        *zap.Logger
}

func NewHandler(categories *categorystore.Store, students *studentstore.Store, index *membership.Index, propagator *renames.Propagator, logger *zap.Logger) *Handler {
	return &Handler{
		Categories: categories,
		Students:   students,
		Index:      index,
		Renames:    propagator,
		Log:        logger,
	}
}

// respondError maps store and propagation errors onto the API error
// envelope. Unknown errors are logged and reported as a plain 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var hasMembers *categorystore.HasMembersError
	switch {
	case errors.Is(err, categorystore.ErrCategoryNotFound):
		apijson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, categorystore.ErrDuplicateCategoryName):
		apijson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, categorystore.ErrInvalidName),
		errors.Is(err, categorystore.ErrInvalidAgeBounds):
		apijson.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &hasMembers):
		apijson.Error(w, http.StatusConflict, hasMembers.Error())
	case errors.Is(err, studentstore.ErrStudentNotFound):
		apijson.Error(w, http.StatusNotFound, err.Error())
	default:
		h.Log.Error("category operation failed", zap.Error(err))
		apijson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
