package roster_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	"github.com/pbfagundes/escolinha/internal/app/system/roster"
	"github.com/pbfagundes/escolinha/internal/app/system/status"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

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

type fakeStudents struct {
	known map[uuid.UUID]bool
}

func (f *fakeStudents) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

type fakeMembers struct {
	members map[string]map[uuid.UUID]bool
}

func (f *fakeMembers) IsMember(_ context.Context, id uuid.UUID, categoryName string) (bool, error) {
	return f.members[categoryName][id], nil
}

func newValidator(t *testing.T) (*roster.Validator, uuid.UUID, uuid.UUID) {
	t.Helper()
	inCat := uuid.New()
	outsider := uuid.New()

	dir := &fakeDirectory{cats: map[string]models.Category{
		"Sub-10":   {Name: "Sub-10", Status: status.Active},
		"Dormente": {Name: "Dormente", Status: status.Inactive},
	}}
	students := &fakeStudents{known: map[uuid.UUID]bool{inCat: true, outsider: true}}
	members := &fakeMembers{members: map[string]map[uuid.UUID]bool{
		"Sub-10": {inCat: true},
	}}
	return roster.NewValidator(dir, students, members), inCat, outsider
}

func TestValidator_Validate(t *testing.T) {
	v, inCat, _ := newValidator(t)

	_, err := v.Validate(context.Background(), "Sub-10", []models.RosterEntry{
		{StudentID: inCat.String(), Position: "goleiro"},
	})
	if err != nil {
		t.Fatalf("valid roster rejected: %v", err)
	}
}

func TestValidator_Validate_ReturnsCanonicalName(t *testing.T) {
	v, inCat, _ := newValidator(t)

	cat, err := v.Validate(context.Background(), "sub-10", []models.RosterEntry{
		{StudentID: inCat.String()},
	})
	if err != nil {
		t.Fatalf("valid roster rejected: %v", err)
	}
	if cat.Name != "Sub-10" {
		t.Fatalf("expected canonical name Sub-10, got %q", cat.Name)
	}
}

func TestValidator_Validate_CollectsAllProblems(t *testing.T) {
	v, inCat, outsider := newValidator(t)

	_, err := v.Validate(context.Background(), "Sub-10", []models.RosterEntry{
		{StudentID: inCat.String()},
		{StudentID: outsider.String()},
		{StudentID: uuid.New().String()}, // unknown student
		{StudentID: "not-a-uuid"},
	})

	var invalid *roster.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(invalid.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(invalid.Problems), invalid.Problems)
	}

	var notInCat *roster.NotInCategoryError
	if !errors.As(invalid.Problems[0], &notInCat) {
		t.Errorf("first problem should be NotInCategoryError, got %v", invalid.Problems[0])
	}
	var notFound *roster.StudentNotFoundError
	if !errors.As(invalid.Problems[1], &notFound) {
		t.Errorf("second problem should be StudentNotFoundError, got %v", invalid.Problems[1])
	}
	if !errors.As(invalid.Problems[2], &notFound) {
		t.Errorf("malformed id should surface as StudentNotFoundError, got %v", invalid.Problems[2])
	}
}

func TestValidator_Validate_UnknownCategory(t *testing.T) {
	v, inCat, _ := newValidator(t)

	_, err := v.Validate(context.Background(), "Sub-99", []models.RosterEntry{{StudentID: inCat.String()}})
	if !errors.Is(err, categorystore.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestValidator_Validate_InactiveCategory(t *testing.T) {
	v, inCat, _ := newValidator(t)

	_, err := v.Validate(context.Background(), "Dormente", []models.RosterEntry{{StudentID: inCat.String()}})
	if !errors.Is(err, roster.ErrCategoryInactive) {
		t.Fatalf("expected ErrCategoryInactive, got %v", err)
	}
}

func TestValidator_Validate_EmptyRoster(t *testing.T) {
	v, _, _ := newValidator(t)

	if _, err := v.Validate(context.Background(), "Sub-10", nil); err != nil {
		t.Fatalf("empty roster rejected: %v", err)
	}
}

func TestValidator_ValidateOne(t *testing.T) {
	v, inCat, outsider := newValidator(t)

	if err := v.ValidateOne(context.Background(), "Sub-10", inCat.String()); err != nil {
		t.Fatalf("member rejected: %v", err)
	}
	err := v.ValidateOne(context.Background(), "Sub-10", outsider.String())
	var invalid *roster.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError for non-member, got %v", err)
	}
}

func TestDedupe(t *testing.T) {
	a, b := uuid.New().String(), uuid.New().String()
	in := []models.RosterEntry{
		{StudentID: a, Position: "goleiro"},
		{StudentID: b},
		{StudentID: a, Position: "zagueiro"},
	}
	out := roster.Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].StudentID != a || out[0].Position != "goleiro" {
		t.Errorf("first occurrence should win: %+v", out[0])
	}
	if out[1].StudentID != b {
		t.Errorf("order not preserved: %+v", out)
	}
}

func TestAddEntry(t *testing.T) {
	a := uuid.New().String()
	entries := roster.AddEntry(nil, models.RosterEntry{StudentID: a})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	// Adding the same student again is a silent no-op.
	entries = roster.AddEntry(entries, models.RosterEntry{StudentID: a, Position: "lateral"})
	if len(entries) != 1 {
		t.Fatalf("duplicate add changed the roster: %+v", entries)
	}
}

func TestRemoveEntry(t *testing.T) {
	a, b := uuid.New().String(), uuid.New().String()
	entries := []models.RosterEntry{{StudentID: a}, {StudentID: b}}

	entries = roster.RemoveEntry(entries, a)
	if len(entries) != 1 || entries[0].StudentID != b {
		t.Fatalf("unexpected roster after removal: %+v", entries)
	}
	// Removing an absent student is a no-op.
	entries = roster.RemoveEntry(entries, uuid.New().String())
	if len(entries) != 1 {
		t.Fatalf("no-op removal changed the roster: %+v", entries)
	}
}
