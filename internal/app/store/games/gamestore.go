// internal/app/store/games/gamestore.go
package gamestore

import (
	"context"
	"errors"
	"time"

	"github.com/pbfagundes/escolinha/internal/app/system/roster"
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
	ErrGameNotFound = errors.New("game not found")

	// ErrNotEditable covers roster and detail edits on a game that has
	// left the scheduled state.
	ErrNotEditable = errors.New("game is no longer scheduled and cannot be edited")

	ErrAlreadyFinished = errors.New("a finished game cannot be cancelled")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("games")}
}

// Create inserts a new scheduled game. The caller is responsible for
// having validated the roster against the category first.
func (s *Store) Create(ctx context.Context, g models.Game) (models.Game, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.Status = models.GameScheduled
	g.Escalacao = roster.Dedupe(g.Escalacao)
	if g.Escalacao == nil {
		g.Escalacao = []models.RosterEntry{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Game{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Game, error) {
	var g models.Game
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return models.Game{}, ErrGameNotFound
	}
	if err != nil {
		return models.Game{}, err
	}
	return g, nil
}

// List returns games, optionally filtered by category name, most recent
// first.
func (s *Store) List(ctx context.Context, categoria string) ([]models.Game, error) {
	filter := bson.M{}
	if categoria != "" {
		filter["categoria"] = categoria
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "starts_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var games []models.Game
	if err := cur.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Update replaces a scheduled game's details and full roster. The
// conditional filter keeps the write from racing a finish/cancel.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, g models.Game) error {
	set := bson.M{
		"categoria":  g.Categoria,
		"opponent":   g.Opponent,
		"location":   g.Location,
		"starts_at":  g.StartsAt,
		"escalacao":  roster.Dedupe(g.Escalacao),
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.GameScheduled},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.editRefusal(ctx, id)
	}
	return nil
}

// ReplaceRoster writes a new lineup on a scheduled game.
func (s *Store) ReplaceRoster(ctx context.Context, id primitive.ObjectID, entries []models.RosterEntry) error {
	entries = roster.Dedupe(entries)
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.GameScheduled},
		bson.M{"$set": bson.M{"escalacao": entries, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.editRefusal(ctx, id)
	}
	return nil
}

// Finish records the final score and moves the game out of the
// editable state. Only a scheduled game can finish.
func (s *Store) Finish(ctx context.Context, id primitive.ObjectID, goalsFor, goalsAway int) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.GameScheduled},
		bson.M{"$set": bson.M{
			"status":     models.GameFinished,
			"goals_for":  goalsFor,
			"goals_away": goalsAway,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.editRefusal(ctx, id)
	}
	return nil
}

// Cancel moves a scheduled game to cancelled. A finished game stays
// finished.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.GameScheduled},
		bson.M{"$set": bson.M{"status": models.GameCancelled, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		g, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if g.Status == models.GameFinished {
			return ErrAlreadyFinished
		}
		// Already cancelled: idempotent.
		return nil
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrGameNotFound
	}
	return nil
}

// editRefusal distinguishes a missing game from one that has left the
// scheduled state, after a conditional update matched nothing.
func (s *Store) editRefusal(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrNotEditable
}
