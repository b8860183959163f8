// internal/app/features/categories/create.go
package categories

import (
	"context"
	"net/http"

	"github.com/pbfagundes/escolinha/internal/app/system/apijson"
	"github.com/pbfagundes/escolinha/internal/app/system/htmlsanitize"
	"github.com/pbfagundes/escolinha/internal/app/system/timeouts"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

type createCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	MinAge      *int   `json:"min_age"`
	MaxAge      *int   `json:"max_age"`
}

// Create handles POST /categories.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createCategoryInput
	if !apijson.Decode(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := h.Categories.Create(ctx, models.Category{
		Name:        in.Name,
		Description: htmlsanitize.Sanitize(in.Description),
		Color:       in.Color,
		MinAge:      in.MinAge,
		MaxAge:      in.MaxAge,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	apijson.Write(w, http.StatusCreated, cat)
}
