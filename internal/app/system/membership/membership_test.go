package membership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	"github.com/pbfagundes/escolinha/internal/app/system/membership"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStudents struct {
	members map[string][]string // category name -> student ids
	err     error
}

func (f *fakeStudents) MemberIDs(_ context.Context, categoryName string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members[categoryName], nil
}

func (f *fakeStudents) IsMember(_ context.Context, id uuid.UUID, categoryName string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, m := range f.members[categoryName] {
		if m == id.String() {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategories struct {
	cats   map[primitive.ObjectID]models.Category
	cached map[primitive.ObjectID][]string
}

func (f *fakeCategories) GetByID(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	cat, ok := f.cats[id]
	if !ok {
		return models.Category{}, categorystore.ErrCategoryNotFound
	}
	return cat, nil
}

func (f *fakeCategories) UpdateMemberCache(_ context.Context, id primitive.ObjectID, memberIDs []string) error {
	if f.cached == nil {
		f.cached = make(map[primitive.ObjectID][]string)
	}
	f.cached[id] = memberIDs
	return nil
}

func TestIndex_Recompute(t *testing.T) {
	catID := primitive.NewObjectID()
	a := uuid.New().String()
	b := uuid.New().String()

	students := &fakeStudents{members: map[string][]string{"Sub-10": {a, b}}}
	categories := &fakeCategories{cats: map[primitive.ObjectID]models.Category{
		catID: {ID: catID, Name: "Sub-10"},
	}}
	ix := membership.NewIndex(students, categories)

	ids, err := ix.Recompute(context.Background(), catID)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 members, got %d", len(ids))
	}
	if got := categories.cached[catID]; len(got) != 2 {
		t.Errorf("cache not written: got %v", got)
	}
}

func TestIndex_Recompute_EmptyIsValid(t *testing.T) {
	catID := primitive.NewObjectID()
	students := &fakeStudents{members: map[string][]string{}}
	categories := &fakeCategories{cats: map[primitive.ObjectID]models.Category{
		catID: {ID: catID, Name: "Sub-12"},
	}}
	ix := membership.NewIndex(students, categories)

	ids, err := ix.Recompute(context.Background(), catID)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty member set, got %v", ids)
	}
	if _, ok := categories.cached[catID]; !ok {
		t.Error("empty set was not written to the cache")
	}
}

func TestIndex_Recompute_UnknownCategory(t *testing.T) {
	students := &fakeStudents{}
	categories := &fakeCategories{cats: map[primitive.ObjectID]models.Category{}}
	ix := membership.NewIndex(students, categories)

	_, err := ix.Recompute(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, categorystore.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if len(categories.cached) != 0 {
		t.Error("cache was written for a missing category")
	}
}

func TestIndex_IsMember(t *testing.T) {
	id := uuid.New()
	students := &fakeStudents{members: map[string][]string{"Sub-10": {id.String()}}}
	ix := membership.NewIndex(students, &fakeCategories{})

	ok, err := ix.IsMember(context.Background(), id, "Sub-10")
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if !ok {
		t.Error("expected member")
	}

	ok, err = ix.IsMember(context.Background(), uuid.New(), "Sub-10")
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if ok {
		t.Error("expected non-member")
	}
}
