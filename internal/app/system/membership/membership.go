// Package membership maintains the derived member cache on categories.
//
// Membership is never stored on its own: it is derived from the two
// category fields on each student record (the multi-valued list and the
// legacy scalar), as a union. Callers never see that dual
// representation; they ask this package "who belongs to C" or "is S a
// member of C" and the predicate is encapsulated here and in the
// student store.
package membership

import (
	"context"

	"github.com/google/uuid"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentSource answers membership questions from the student records,
// which are the source of truth.
type StudentSource interface {
	MemberIDs(ctx context.Context, categoryName string) ([]string, error)
	IsMember(ctx context.Context, id uuid.UUID, categoryName string) (bool, error)
}

// CategoryCache reads category records and accepts derived cache writes.
type CategoryCache interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	UpdateMemberCache(ctx context.Context, id primitive.ObjectID, memberIDs []string) error
}

type Index struct {
	students   StudentSource
	categories CategoryCache
}

func NewIndex(students StudentSource, categories CategoryCache) *Index {
	return &Index{students: students, categories: categories}
}

// Recompute scans the student records for the category's current
// members and writes the id set and its size into the category's cached
// fields. Idempotent; a zero-member result is valid and is written as
// an empty set, not an error. Student records are not touched.
//
// Recomputing a nonexistent category returns the category store's
// not-found error and changes nothing.
func (ix *Index) Recompute(ctx context.Context, categoryID primitive.ObjectID) ([]string, error) {
	cat, err := ix.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	ids, err := ix.students.MemberIDs(ctx, cat.Name)
	if err != nil {
		return nil, err
	}
	if err := ix.categories.UpdateMemberCache(ctx, categoryID, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// IsMember evaluates the union predicate for one student without a full
// recompute. Used by roster validation for cheap per-entry checks.
func (ix *Index) IsMember(ctx context.Context, studentID uuid.UUID, categoryName string) (bool, error) {
	return ix.students.IsMember(ctx, studentID, categoryName)
}
