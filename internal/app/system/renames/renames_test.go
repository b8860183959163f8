package renames_test

import (
	"context"
	"errors"
	"testing"

	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	"github.com/pbfagundes/escolinha/internal/app/system/renames"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type rewriteCall struct {
	oldName, newName string
}

type fakeRewriter struct {
	calls   []rewriteCall
	failOn  string // fail when oldName matches
	current string // the name student records currently hold
}

func (f *fakeRewriter) RenameCategory(_ context.Context, oldName, newName string) (int64, error) {
	f.calls = append(f.calls, rewriteCall{oldName, newName})
	if f.failOn != "" && oldName == f.failOn {
		return 0, errors.New("rewrite failed")
	}
	if f.current == oldName {
		f.current = newName
	}
	return 2, nil
}

type fakeDirectory struct {
	cat          models.Category
	taken        map[string]bool
	applyErr     error
	appliedName  string
	applyCalled  bool
	recomputed   int
	recomputeErr error
}

func (f *fakeDirectory) GetByID(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	if id != f.cat.ID {
		return models.Category{}, categorystore.ErrCategoryNotFound
	}
	return f.cat, nil
}

func (f *fakeDirectory) NameInUse(_ context.Context, name string, _ primitive.ObjectID) (bool, error) {
	return f.taken[name], nil
}

func (f *fakeDirectory) ApplyName(_ context.Context, _ primitive.ObjectID, newName string) error {
	f.applyCalled = true
	if f.applyErr != nil {
		return f.applyErr
	}
	f.appliedName = newName
	return nil
}

func (f *fakeDirectory) Recompute(_ context.Context, _ primitive.ObjectID) ([]string, error) {
	f.recomputed++
	return nil, f.recomputeErr
}

func newFixture(name string) (*fakeRewriter, *fakeDirectory, *renames.Propagator) {
	dir := &fakeDirectory{
		cat:   models.Category{ID: primitive.NewObjectID(), Name: name},
		taken: map[string]bool{},
	}
	rw := &fakeRewriter{current: name}
	p := renames.NewPropagator(rw, dir, dir, zap.NewNop())
	return rw, dir, p
}

func TestPropagator_Rename(t *testing.T) {
	rw, dir, p := newFixture("Sub-8")

	cat, err := p.Rename(context.Background(), dir.cat.ID, "Sub-9")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if cat.Name != "Sub-9" {
		t.Errorf("returned name: got %q, want %q", cat.Name, "Sub-9")
	}
	if dir.appliedName != "Sub-9" {
		t.Errorf("directory name: got %q, want %q", dir.appliedName, "Sub-9")
	}
	if rw.current != "Sub-9" {
		t.Errorf("student records hold %q, want %q", rw.current, "Sub-9")
	}
	if len(rw.calls) != 1 {
		t.Errorf("expected a single rewrite, got %v", rw.calls)
	}
	if dir.recomputed != 1 {
		t.Errorf("expected one recompute, got %d", dir.recomputed)
	}
}

func TestPropagator_Rename_SameNameIsNoOp(t *testing.T) {
	rw, dir, p := newFixture("Sub-8")

	if _, err := p.Rename(context.Background(), dir.cat.ID, "Sub-8"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if len(rw.calls) != 0 {
		t.Errorf("no-op rename touched student records: %v", rw.calls)
	}
	if dir.applyCalled {
		t.Error("no-op rename touched the directory")
	}
}

func TestPropagator_Rename_DuplicateName(t *testing.T) {
	rw, dir, p := newFixture("Sub-8")
	dir.taken["Sub-10"] = true

	_, err := p.Rename(context.Background(), dir.cat.ID, "Sub-10")
	if !errors.Is(err, categorystore.ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}
	if len(rw.calls) != 0 {
		t.Errorf("rejected rename touched student records: %v", rw.calls)
	}
}

func TestPropagator_Rename_InvalidName(t *testing.T) {
	rw, dir, p := newFixture("Sub-8")

	if _, err := p.Rename(context.Background(), dir.cat.ID, "x"); err == nil {
		t.Fatal("expected validation error for a too-short name")
	}
	if len(rw.calls) != 0 {
		t.Errorf("rejected rename touched student records: %v", rw.calls)
	}
}

func TestPropagator_Rename_CompensatesOnApplyFailure(t *testing.T) {
	rw, dir, p := newFixture("Sub-8")
	dir.applyErr = errors.New("document write failed")

	_, err := p.Rename(context.Background(), dir.cat.ID, "Sub-9")
	if err == nil {
		t.Fatal("expected error when the directory write fails")
	}
	// The forward rewrite must have been reversed: students end up on
	// the original name and two rewrite calls were made.
	if rw.current != "Sub-8" {
		t.Errorf("student records hold %q after rollback, want %q", rw.current, "Sub-8")
	}
	if len(rw.calls) != 2 {
		t.Fatalf("expected forward+reverse rewrites, got %v", rw.calls)
	}
	if rw.calls[1] != (rewriteCall{"Sub-9", "Sub-8"}) {
		t.Errorf("second rewrite is not the reverse: %v", rw.calls[1])
	}
}

func TestPropagator_Rename_UnknownCategory(t *testing.T) {
	_, _, p := newFixture("Sub-8")

	_, err := p.Rename(context.Background(), primitive.NewObjectID(), "Sub-9")
	if !errors.Is(err, categorystore.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
