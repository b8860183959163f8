package trainings_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pbfagundes/escolinha/internal/app/features/trainings"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	trainingstore "github.com/pbfagundes/escolinha/internal/app/store/trainings"
	"github.com/pbfagundes/escolinha/internal/app/system/roster"
	"github.com/pbfagundes/escolinha/internal/app/system/status"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"github.com/pbfagundes/escolinha/internal/testutil"
	"go.uber.org/zap"
)

// Trainings carry no roster, so only the directory side of the
// validator matters here; it is faked while the store runs against a
// real MongoDB.

type fakeDirectory struct {
	cats map[string]models.Category
}

// GetByName resolves case-insensitively, like the backing store.
func (f *fakeDirectory) GetByName(_ context.Context, name string) (models.Category, error) {
	for _, cat := range f.cats {
		if strings.EqualFold(cat.Name, name) {
			return cat, nil
		}
	}
	return models.Category{}, categorystore.ErrCategoryNotFound
}

type fakeStudents struct{}

func (fakeStudents) Exists(context.Context, uuid.UUID) (bool, error) { return false, nil }

type fakeMembers struct{}

func (fakeMembers) IsMember(context.Context, uuid.UUID, string) (bool, error) { return false, nil }

func setupHandler(t *testing.T) *trainings.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	dir := &fakeDirectory{cats: map[string]models.Category{
		"Sub-10":   {Name: "Sub-10", Status: status.Active},
		"Dormente": {Name: "Dormente", Status: status.Inactive},
	}}
	return trainings.NewHandler(
		trainingstore.New(db),
		roster.NewValidator(dir, fakeStudents{}, fakeMembers{}),
		zap.NewNop())
}

func TestHandler_Create_CanonicalizesCategoryName(t *testing.T) {
	h := setupHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/trainings", map[string]any{
		"categoria": "sub-10",
		"location":  "Campo 1",
		"starts_at": time.Now().UTC().Add(24 * time.Hour),
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var tr models.Training
	testutil.DecodeJSON(t, rec, &tr)
	if tr.Categoria != "Sub-10" {
		t.Fatalf("expected canonical category name, got %q", tr.Categoria)
	}

	// The exact-match list filter must find the session under the
	// directory's spelling.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	listed, err := h.Trainings.List(ctx, "Sub-10")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("expected 1 training under Sub-10, got %d", len(listed))
	}
}

func TestHandler_Create_InactiveCategory(t *testing.T) {
	h := setupHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/trainings", map[string]any{
		"categoria": "Dormente",
		"starts_at": time.Now().UTC().Add(24 * time.Hour),
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}
