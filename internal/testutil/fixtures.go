package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pbfagundes/escolinha/internal/app/system/status"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data in both
// backends.
type Fixtures struct {
	db  *mongo.Database
	sql *sql.DB
	t   *testing.T
}

// NewFixtures creates a Fixtures instance. Either backend may be nil
// when a test only touches the other.
func NewFixtures(t *testing.T, db *mongo.Database, sqlDB *sql.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, sql: sqlDB, t: t}
}

// CreateCategory inserts an active category with the given name.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    status.Active,
		MemberIDs: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateInactiveCategory inserts a category with status inactive.
func (f *Fixtures) CreateInactiveCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	cat := f.CreateCategory(ctx, name)
	_, err := f.db.Collection("categories").UpdateOne(ctx,
		bson.M{"_id": cat.ID},
		bson.M{"$set": bson.M{"status": status.Inactive}})
	if err != nil {
		f.t.Fatalf("failed to deactivate test category: %v", err)
	}
	cat.Status = status.Inactive
	return cat
}

// CreateStudent inserts a student row linked to the given category
// names. The legacy scalar is set to the first name, matching what the
// link path does.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName string, categories ...string) models.Student {
	f.t.Helper()

	now := time.Now().UTC()
	if categories == nil {
		categories = []string{}
	}
	st := models.Student{
		ID:         uuid.New(),
		FullName:   fullName,
		BirthDate:  time.Date(2015, 3, 10, 0, 0, 0, 0, time.UTC),
		Categories: categories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if len(categories) > 0 {
		st.Category = &categories[0]
	}

	_, err := f.sql.ExecContext(ctx, `
		INSERT INTO students (id, full_name, birth_date, guardian, phone, categories, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		st.ID, st.FullName, st.BirthDate, st.Guardian, st.Phone,
		pq.Array(st.Categories), st.Category, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return st
}

// CreateGame inserts a scheduled game under the given category name.
func (f *Fixtures) CreateGame(ctx context.Context, categoria string, entries ...models.RosterEntry) models.Game {
	f.t.Helper()

	now := time.Now().UTC()
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	g := models.Game{
		ID:        primitive.NewObjectID(),
		Categoria: categoria,
		Opponent:  "Test Opponent",
		StartsAt:  now.Add(48 * time.Hour),
		Escalacao: entries,
		Status:    models.GameScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("games").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test game: %v", err)
	}
	return g
}

// CreateTraining inserts a training session under the given category
// name.
func (f *Fixtures) CreateTraining(ctx context.Context, categoria string) models.Training {
	f.t.Helper()

	now := time.Now().UTC()
	tr := models.Training{
		ID:        primitive.NewObjectID(),
		Categoria: categoria,
		Location:  "Campo 1",
		StartsAt:  now.Add(24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("trainings").InsertOne(ctx, tr); err != nil {
		f.t.Fatalf("failed to create test training: %v", err)
	}
	return tr
}
