// internal/app/features/trainings/handler.go
package trainings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	trainingstore "github.com/pbfagundes/escolinha/internal/app/store/trainings"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/htmlsanitize"
	"github.com/pbfagundes/escolinha/internal/app/system/roster"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the training session endpoints. Trainings carry no
// roster; only the category name is checked, the same way game writes
// check theirs.
type Handler struct {
	Trainings *trainingstore.Store
	Validator *roster.Validator
	Log       *zap.Logger
}

func NewHandler(trainings *trainingstore.Store, validator *roster.Validator, logger *zap.Logger) *Handler {
	return &Handler{Trainings: trainings, Validator: validator, Log: logger}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trainingstore.ErrTrainingNotFound):
		apijson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, categorystore.ErrCategoryNotFound),
		errors.Is(err, roster.ErrCategoryInactive):
		apijson.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Log.Error("training operation failed", zap.Error(err))
		apijson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "invalid training id")
		return primitive.NilObjectID, false
	}
	return id, true
}

type trainingInput struct {
	Categoria string    `json:"categoria"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	Notes     string    `json:"notes"`
}

func (in *trainingInput) check(w http.ResponseWriter) bool {
	if in.Categoria == "" {
		apijson.Error(w, http.StatusBadRequest, "categoria is required")
		return false
	}
	if in.StartsAt.IsZero() {
		apijson.Error(w, http.StatusBadRequest, "starts_at is required")
		return false
	}
	return true
}

// Create handles POST /trainings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in trainingInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	if !in.check(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := h.Validator.Category(ctx, in.Categoria)
	if err != nil {
		h.respondError(w, err)
		return
	}

	// Persist the canonical spelling so exact-match list filters work.
	tr, err := h.Trainings.Create(ctx, models.Training{
		Categoria: cat.Name,
		Location:  in.Location,
		StartsAt:  in.StartsAt,
		Notes:     htmlsanitize.Sanitize(in.Notes),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusCreated, tr)
}

// List handles GET /trainings, optionally filtered by ?categoria=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	trs, err := h.Trainings.List(ctx, r.URL.Query().Get("categoria"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if trs == nil {
		trs = []models.Training{}
	}
	apijson.Write(w, http.StatusOK, trs)
}

// View handles GET /trainings/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tr, err := h.Trainings.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, tr)
}

// Update handles PUT /trainings/{id}. The category name is re-checked
// against current directory state on every edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in trainingInput
	if !apijson.Decode(w, r, &in) {
		return
	}
	if !in.check(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := h.Validator.Category(ctx, in.Categoria)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Trainings.Update(ctx, id, models.Training{
		Categoria: cat.Name,
		Location:  in.Location,
		StartsAt:  in.StartsAt,
		Notes:     htmlsanitize.Sanitize(in.Notes),
	}); err != nil {
		h.respondError(w, err)
		return
	}

	tr, err := h.Trainings.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	apijson.Write(w, http.StatusOK, tr)
}

// Delete handles DELETE /trainings/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Trainings.Delete(ctx, id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
