// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/pbfagundes/escolinha/internal/app/system/status"
	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateCategoryName = errors.New("a category with this name already exists")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrInvalidName           = errors.New("category name must be between 2 and 50 characters")
	ErrInvalidAgeBounds      = errors.New("maximum age must be greater than or equal to minimum age")
)

// HasMembersError is returned when deleting a category whose derived
// member count is still positive.
type HasMembersError struct {
	Count int
}

func (e *HasMembersError) Error() string {
	return fmt.Sprintf("category still has %d member(s)", e.Count)
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// ValidateName enforces the 2–50 character rule on the trimmed name.
func ValidateName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n < 2 || n > 50 {
		return ErrInvalidName
	}
	return nil
}

// ValidateAgeBounds enforces min <= max when both bounds are set.
func ValidateAgeBounds(min, max *int) error {
	if min != nil && max != nil && *max < *min {
		return ErrInvalidAgeBounds
	}
	return nil
}

func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	if err := ValidateName(cat.Name); err != nil {
		return models.Category{}, err
	}
	if err := ValidateAgeBounds(cat.MinAge, cat.MaxAge); err != nil {
		return models.Category{}, err
	}
	now := time.Now().UTC()
	cat.ID = primitive.NewObjectID()
	cat.Name = strings.TrimSpace(cat.Name)
	cat.NameCI = text.Fold(cat.Name)
	if cat.Status == "" {
		cat.Status = status.Active
	}
	cat.MemberIDs = []string{}
	cat.MemberCount = 0
	cat.CreatedAt = now
	cat.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, cat)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateCategoryName
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var cat models.Category
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// GetByName resolves a category by exact name or by its folded
// case-insensitive key.
func (s *Store) GetByName(ctx context.Context, name string) (models.Category, error) {
	var cat models.Category
	err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(name)}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// List returns all categories sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// UpdateInfo updates the descriptive fields of a category. The name is
// not changed here; renames go through the rename propagator so student
// records stay consistent.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, description, color string, minAge, maxAge *int) error {
	if err := ValidateAgeBounds(minAge, maxAge); err != nil {
		return err
	}
	set := bson.M{
		"description": description,
		"color":       color,
		"min_age":     minAge,
		"max_age":     maxAge,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// NameInUse reports whether another category (excluding excludeID)
// already holds the given name, compared case-insensitively.
func (s *Store) NameInUse(ctx context.Context, name string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"name_ci": text.Fold(name),
		"_id":     bson.M{"$ne": excludeID},
	}
	n, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ApplyName writes the stored name change. Callers must have rewritten
// all student references first (see the renames package); this is the
// last step of a rename, not an entry point for one.
func (s *Store) ApplyName(ctx context.Context, id primitive.ObjectID, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	set := bson.M{
		"name":       strings.TrimSpace(newName),
		"name_ci":    text.Fold(newName),
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateCategoryName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ToggleActive flips the soft active flag. Existing scheduled games are
// not touched; their rosters are only re-checked on their next write.
// The flip is a single pipeline update so concurrent toggles cannot
// both land on the same value.
func (s *Store) ToggleActive(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	update := bson.A{bson.M{"$set": bson.M{
		"status": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$status", status.Active}},
			status.Inactive,
			status.Active,
		}},
		"updated_at": time.Now().UTC(),
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cat models.Category
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// Delete removes a category. It refuses while the cached member count is
// positive; callers wanting a fresh count should recompute first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	cat, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat.MemberCount > 0 {
		return &HasMembersError{Count: cat.MemberCount}
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// UpdateMemberCache writes the derived membership fields. Only the
// membership index calls this; the values are never edited by hand.
func (s *Store) UpdateMemberCache(ctx context.Context, id primitive.ObjectID, memberIDs []string) error {
	if memberIDs == nil {
		memberIDs = []string{}
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"member_ids":   memberIDs,
		"member_count": len(memberIDs),
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
