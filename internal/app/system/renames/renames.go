// Package renames propagates a category name change to every student
// record that references the old name.
//
// The propagation must be total or absent: a mixed-name state, where
// some students carry the new name and others the old one, is worse
// than a failed rename. Student rewrites run as one atomic statement in
// the relational store; the category document's stored name changes
// only after that succeeds, and a failure on the document side triggers
// a compensating reverse rewrite.
//
// Games and trainings reference categories by denormalized name and are
// deliberately not rewritten: a game played under the old name keeps it
// as a historical record. New writes are validated against the current
// directory, so the old name cannot be used again.
package renames

import (
	"context"
	"fmt"
	"strings"

	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StudentRewriter rewrites category references on student records.
// RenameCategory must apply to all matching students or to none.
type StudentRewriter interface {
	RenameCategory(ctx context.Context, oldName, newName string) (int64, error)
}

// Directory is the category store surface the propagator needs.
type Directory interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	NameInUse(ctx context.Context, name string, excludeID primitive.ObjectID) (bool, error)
	ApplyName(ctx context.Context, id primitive.ObjectID, newName string) error
}

// Recomputer rebuilds a category's derived member cache.
type Recomputer interface {
	Recompute(ctx context.Context, categoryID primitive.ObjectID) ([]string, error)
}

type Propagator struct {
	students   StudentRewriter
	categories Directory
	index      Recomputer
	log        *zap.Logger
}

func NewPropagator(students StudentRewriter, categories Directory, index Recomputer, log *zap.Logger) *Propagator {
	return &Propagator{students: students, categories: categories, index: index, log: log}
}

// Rename changes a category's name and rewrites every student reference
// from the old name to the new one. On any failure both the category
// and all student records keep their pre-rename state.
func (p *Propagator) Rename(ctx context.Context, id primitive.ObjectID, newName string) (models.Category, error) {
	newName = strings.TrimSpace(newName)
	if err := categorystore.ValidateName(newName); err != nil {
		return models.Category{}, err
	}

	cat, err := p.categories.GetByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	oldName := cat.Name
	if oldName == newName {
		return cat, nil
	}

	inUse, err := p.categories.NameInUse(ctx, newName, id)
	if err != nil {
		return models.Category{}, err
	}
	if inUse {
		return models.Category{}, categorystore.ErrDuplicateCategoryName
	}

	// Rewrite the student references first; this is the multi-record
	// half and it is atomic on its own.
	n, err := p.students.RenameCategory(ctx, oldName, newName)
	if err != nil {
		return models.Category{}, fmt.Errorf("rewrite student references: %w", err)
	}

	// Then commit the stored name. If this fails, reverse the student
	// rewrites so neither side keeps a mixed state.
	if err := p.categories.ApplyName(ctx, id, newName); err != nil {
		if _, revErr := p.students.RenameCategory(ctx, newName, oldName); revErr != nil {
			p.log.Error("rename rollback failed; student records reference a name the directory does not hold",
				zap.String("category_id", id.Hex()),
				zap.String("old_name", oldName),
				zap.String("new_name", newName),
				zap.Error(revErr))
			return models.Category{}, fmt.Errorf("apply category name: %w (rollback also failed: %v)", err, revErr)
		}
		return models.Category{}, fmt.Errorf("apply category name: %w", err)
	}

	p.log.Info("category renamed",
		zap.String("category_id", id.Hex()),
		zap.String("old_name", oldName),
		zap.String("new_name", newName),
		zap.Int64("students_rewritten", n))

	// Membership itself did not change, but the cache is recomputed
	// eagerly like every other category mutation.
	if _, err := p.index.Recompute(ctx, id); err != nil {
		p.log.Warn("post-rename recompute failed", zap.String("category_id", id.Hex()), zap.Error(err))
	}

	cat.Name = newName
	return cat, nil
}
