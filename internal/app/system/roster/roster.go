// Package roster gatekeeps every operation that establishes or changes
// a game's lineup.
//
// A roster is only accepted when the game's category currently exists
// and is active, and every listed student resolves and is a member of
// that category. The checks run on every create and update; there is no
// persisted "validated" flag, so deactivating a category does not
// retroactively invalidate scheduled games, but the next edit of such a
// game re-validates against current state and fails.
//
// All entries are checked before reporting, so a rejection enumerates
// the complete set of offending students rather than the first one.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pbfagundes/escolinha/internal/app/system/status"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

// Directory resolves category names against the category directory.
type Directory interface {
	GetByName(ctx context.Context, name string) (models.Category, error)
}

// Students resolves student ids in the relational store.
type Students interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Members evaluates the derived membership predicate.
type Members interface {
	IsMember(ctx context.Context, studentID uuid.UUID, categoryName string) (bool, error)
}

var ErrCategoryInactive = errors.New("category is not active")

// StudentNotFoundError reports a roster entry whose id does not resolve.
type StudentNotFoundError struct {
	StudentID string
}

func (e *StudentNotFoundError) Error() string {
	return fmt.Sprintf("student %s not found", e.StudentID)
}

// NotInCategoryError reports a roster entry whose student is not a
// member of the game's category.
type NotInCategoryError struct {
	StudentID string
	Categoria string
}

func (e *NotInCategoryError) Error() string {
	return fmt.Sprintf("student %s does not belong to category %q", e.StudentID, e.Categoria)
}

// ValidationError aggregates every roster entry problem found in one
// validation pass.
type ValidationError struct {
	Categoria string
	Problems  []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("invalid roster for category %q: %s", e.Categoria, strings.Join(msgs, "; "))
}

type Validator struct {
	categories Directory
	students   Students
	members    Members
}

func NewValidator(categories Directory, students Students, members Members) *Validator {
	return &Validator{categories: categories, students: students, members: members}
}

// Category resolves the named category and requires it to be active.
func (v *Validator) Category(ctx context.Context, name string) (models.Category, error) {
	cat, err := v.categories.GetByName(ctx, name)
	if err != nil {
		return models.Category{}, err
	}
	if cat.Status != status.Active {
		return models.Category{}, ErrCategoryInactive
	}
	return cat, nil
}

// Validate checks a full proposed roster against the named category.
// The category must exist and be active; every entry's student must
// resolve and be a member. Entry problems are collected into a single
// ValidationError covering the whole roster.
//
// On success the resolved category is returned so callers persist its
// canonical name rather than the request spelling; name resolution is
// case-insensitive but everything downstream matches exactly.
func (v *Validator) Validate(ctx context.Context, categoria string, entries []models.RosterEntry) (models.Category, error) {
	cat, err := v.Category(ctx, categoria)
	if err != nil {
		return models.Category{}, err
	}

	var problems []error
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.StudentID] {
			continue
		}
		seen[e.StudentID] = true

		id, err := uuid.Parse(e.StudentID)
		if err != nil {
			problems = append(problems, &StudentNotFoundError{StudentID: e.StudentID})
			continue
		}
		exists, err := v.students.Exists(ctx, id)
		if err != nil {
			return models.Category{}, err
		}
		if !exists {
			problems = append(problems, &StudentNotFoundError{StudentID: e.StudentID})
			continue
		}
		ok, err := v.members.IsMember(ctx, id, cat.Name)
		if err != nil {
			return models.Category{}, err
		}
		if !ok {
			problems = append(problems, &NotInCategoryError{StudentID: e.StudentID, Categoria: cat.Name})
		}
	}

	if len(problems) > 0 {
		return models.Category{}, &ValidationError{Categoria: cat.Name, Problems: problems}
	}
	return cat, nil
}

// ValidateOne checks a single student against the named category, for
// the incremental add-one path.
func (v *Validator) ValidateOne(ctx context.Context, categoria string, studentID string) error {
	_, err := v.Validate(ctx, categoria, []models.RosterEntry{{StudentID: studentID}})
	return err
}

// Dedupe drops repeated entries for the same student, keeping the
// first occurrence so roster order is preserved. Applied when a whole
// roster is submitted, matching the idempotence of the add-one path.
func Dedupe(entries []models.RosterEntry) []models.RosterEntry {
	seen := make(map[string]bool, len(entries))
	kept := entries[:0]
	for _, e := range entries {
		if seen[e.StudentID] {
			continue
		}
		seen[e.StudentID] = true
		kept = append(kept, e)
	}
	return kept
}

// AddEntry appends an entry unless the student is already rostered.
// The duplicate add is a silent no-op, not a failure.
func AddEntry(entries []models.RosterEntry, entry models.RosterEntry) []models.RosterEntry {
	for _, e := range entries {
		if e.StudentID == entry.StudentID {
			return entries
		}
	}
	return append(entries, entry)
}

// RemoveEntry removes all entries for the given student. Removing a
// student who is not rostered leaves the roster unchanged.
func RemoveEntry(entries []models.RosterEntry, studentID string) []models.RosterEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.StudentID != studentID {
			kept = append(kept, e)
		}
	}
	return kept
}
