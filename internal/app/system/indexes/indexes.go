// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so any problem is visible and startup can fail
fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureGames(ctx, db); err != nil {
		problems = append(problems, "games: "+err.Error())
	}
	if err := ensureTrainings(ctx, db); err != nil {
		problems = append(problems, "trainings: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameUnique(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// ensureIndexSet reconciles the desired indexes for one collection:
// reuse an existing index with the same keys and options, drop and
// recreate on an options mismatch, create when missing.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range desired {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok && sameUnique(unique, ex.Unique) {
			continue
		} else if ok {
			// Options mismatch (e.g., upgrading to unique): drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique != nil && *unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// Category names are unique case-insensitively, via the folded name_ci
// key. The unique index is what backs DuplicateName detection.
func ensureCategories(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("categories"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("categories_name_ci_unique"), Unique: boolPtr(true)},
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("categories_status")},
		},
	})
}

func ensureGames(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("games"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "categoria", Value: 1}, {Key: "starts_at", Value: -1}},
			Options: &options.IndexOptions{Name: strPtr("games_categoria_starts_at")},
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("games_status")},
		},
	})
}

func ensureTrainings(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("trainings"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "categoria", Value: 1}, {Key: "starts_at", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("trainings_categoria_starts_at")},
		},
	})
}

func strPtr(s string) *string { return &s }
