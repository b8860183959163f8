package studentstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	studentstore "github.com/pbfagundes/escolinha/internal/app/store/students"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"github.com/pbfagundes/escolinha/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestSQL(t, studentstore.EnsureSchema)
	store := studentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st, err := store.Create(ctx, models.Student{
		FullName:  "João Silva",
		BirthDate: time.Date(2016, 5, 20, 0, 0, 0, 0, time.UTC),
		Guardian:  "Maria Silva",
		Phone:     "11 99999-0000",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FullName != "João Silva" {
		t.Errorf("FullName: got %q", got.FullName)
	}
	if len(got.Categories) != 0 {
		t.Errorf("new student has categories: %v", got.Categories)
	}
	if got.Category != nil {
		t.Errorf("new student has legacy scalar set: %v", *got.Category)
	}

	if _, err := store.GetByID(ctx, uuid.New()); !errors.Is(err, studentstore.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStore_LinkSetsScalarWhenUnset(t *testing.T) {
	db := testutil.SetupTestSQL(t, studentstore.EnsureSchema)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, nil, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Ana")

	linked, err := store.Link(ctx, st.ID, "Sub-10")
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if len(linked.Categories) != 1 || linked.Categories[0] != "Sub-10" {
		t.Errorf("Categories: got %v", linked.Categories)
	}
	if linked.Category == nil || *linked.Category != "Sub-10" {
		t.Errorf("legacy scalar not set on first link: %v", linked.Category)
	}

	// Linking a second category leaves the scalar on the first.
	linked, err = store.Link(ctx, st.ID, "Sub-12")
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if *linked.Category != "Sub-10" {
		t.Errorf("legacy scalar moved on second link: %v", *linked.Category)
	}

	// Linking an already-linked category is a no-op.
	linked, err = store.Link(ctx, st.ID, "Sub-10")
	if err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if len(linked.Categories) != 2 {
		t.Errorf("duplicate link changed the list: %v", linked.Categories)
	}
}

func TestStore_UnlinkScalarFallback(t *testing.T) {
	db := testutil.SetupTestSQL(t, studentstore.EnsureSchema)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, nil, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Bruno", "Sub-10", "Sub-12")

	// Scalar held Sub-10; removing it falls back to the first remaining.
	got, err := store.Unlink(ctx, st.ID, "Sub-10")
	if err != nil {
		t.Fatalf("Unlink failed: %v", err)
	}
	if got.Category == nil || *got.Category != "Sub-12" {
		t.Errorf("scalar fallback: got %v, want Sub-12", got.Category)
	}

	// Removing the last category clears the scalar.
	got, err = store.Unlink(ctx, st.ID, "Sub-12")
	if err != nil {
		t.Fatalf("Unlink failed: %v", err)
	}
	if len(got.Categories) != 0 {
		t.Errorf("Categories: got %v", got.Categories)
	}
	if got.Category != nil {
		t.Errorf("scalar not cleared: %v", *got.Category)
	}

	// Unlinking an absent category is a no-op.
	if _, err := store.Unlink(ctx, st.ID, "Sub-99"); err != nil {
		t.Fatalf("no-op unlink failed: %v", err)
	}
}

func TestStore_MemberIDs_UnionPredicate(t *testing.T) {
	db := testutil.SetupTestSQL(t, studentstore.EnsureSchema)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, nil, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inList := fixtures.CreateStudent(ctx, "Ana", "Sub-10")
	other := fixtures.CreateStudent(ctx, "Bruno", "Sub-12")

	// A legacy record: scalar set, list empty.
	legacy, err := store.Create(ctx, models.Student{
		FullName:  "Carlos",
		BirthDate: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		Category:  strPtr("Sub-10"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A record matching through both fields counts once.
	both := fixtures.CreateStudent(ctx, "Duda", "Sub-10")

	ids, err := store.MemberIDs(ctx, "Sub-10")
	if err != nil {
		t.Fatalf("MemberIDs failed: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 members, got %d: %v", len(ids), ids)
	}
	want := map[string]bool{inList.ID.String(): true, legacy.ID.String(): true, both.ID.String(): true}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected member %s", id)
		}
	}

	ok, err := store.IsMember(ctx, legacy.ID, "Sub-10")
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if !ok {
		t.Error("legacy-scalar student not counted as member")
	}
	ok, err = store.IsMember(ctx, other.ID, "Sub-10")
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if ok {
		t.Error("Sub-12 student counted as Sub-10 member")
	}
}

func TestStore_RenameCategory(t *testing.T) {
	db := testutil.SetupTestSQL(t, studentstore.EnsureSchema)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, nil, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateStudent(ctx, "Ana", "Sub-8")
	b := fixtures.CreateStudent(ctx, "Bruno", "Sub-8", "Sub-12")
	untouched := fixtures.CreateStudent(ctx, "Carlos", "Sub-12")

	n, err := store.RenameCategory(ctx, "Sub-8", "Sub-9")
	if err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}
	if n != 2 {
		t.Errorf("rows touched: got %d, want 2", n)
	}

	got, _ := store.GetByID(ctx, a.ID)
	if len(got.Categories) != 1 || got.Categories[0] != "Sub-9" {
		t.Errorf("a.Categories: got %v", got.Categories)
	}
	if got.Category == nil || *got.Category != "Sub-9" {
		t.Errorf("a scalar not rewritten: %v", got.Category)
	}

	got, _ = store.GetByID(ctx, b.ID)
	if got.Categories[0] != "Sub-9" || got.Categories[1] != "Sub-12" {
		t.Errorf("b.Categories: got %v", got.Categories)
	}

	got, _ = store.GetByID(ctx, untouched.ID)
	if got.Categories[0] != "Sub-12" {
		t.Errorf("unrelated student touched: %v", got.Categories)
	}

	// Old name no longer matches anyone.
	ids, err := store.MemberIDs(ctx, "Sub-8")
	if err != nil {
		t.Fatalf("MemberIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("old name still has members: %v", ids)
	}
}

func TestStore_UpdateInfo_LegacyScalar(t *testing.T) {
	db := testutil.SetupTestSQL(t, studentstore.EnsureSchema)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, nil, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Ana", "Sub-10")

	// A nil legacy value leaves the scalar alone.
	if err := store.UpdateInfo(ctx, st.ID, "Ana Souza", st.BirthDate, "", "", nil); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	got, _ := store.GetByID(ctx, st.ID)
	if got.FullName != "Ana Souza" {
		t.Errorf("FullName: got %q", got.FullName)
	}
	if got.Category == nil || *got.Category != "Sub-10" {
		t.Errorf("scalar changed by nil update: %v", got.Category)
	}

	// The legacy path may write the scalar directly, even to a name not
	// in the list.
	if err := store.UpdateInfo(ctx, st.ID, "Ana Souza", st.BirthDate, "", "", strPtr("Sub-12")); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	got, _ = store.GetByID(ctx, st.ID)
	if got.Category == nil || *got.Category != "Sub-12" {
		t.Errorf("scalar not written: %v", got.Category)
	}

	ok, err := store.IsMember(ctx, st.ID, "Sub-12")
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if !ok {
		t.Error("scalar-only association not counted as membership")
	}
}
