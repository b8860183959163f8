// internal/app/features/games/handler.go
package games

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	gamestore "github.com/pbfagundes/escolinha/internal/app/store/games"
	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/roster"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the game endpoints. Every write that establishes or
// changes a roster goes through the validator before the document is
// persisted.
type Handler struct {
	Games     *gamestore.Store
	Validator *roster.Validator
	Log       *zap.Logger
}

func NewHandler(games *gamestore.Store, validator *roster.Validator, logger *zap.Logger) *Handler {
	return &Handler{Games: games, Validator: validator, Log: logger}
}

// respondError maps store and validation errors onto the API error
// envelope. A roster rejection enumerates every offending entry in the
// details list.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var invalid *roster.ValidationError
	switch {
	case errors.Is(err, gamestore.ErrGameNotFound):
		apijson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gamestore.ErrNotEditable),
		errors.Is(err, gamestore.ErrAlreadyFinished):
		apijson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, categorystore.ErrCategoryNotFound),
		errors.Is(err, roster.ErrCategoryInactive):
		apijson.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &invalid):
		details := make([]string, len(invalid.Problems))
		for i, p := range invalid.Problems {
			details[i] = p.Error()
		}
		apijson.Error(w, http.StatusUnprocessableEntity, "invalid roster", details...)
	default:
		h.Log.Error("game operation failed", zap.Error(err))
		apijson.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apijson.Error(w, http.StatusBadRequest, "invalid game id")
		return primitive.NilObjectID, false
	}
	return id, true
}
