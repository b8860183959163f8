// internal/app/store/trainings/trainingstore.go
package trainingstore

import (
	"context"
	"errors"
	"time"

	"github.com/pbfagundes/escolinha/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrTrainingNotFound = errors.New("training session not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("trainings")}
}

func (s *Store) Create(ctx context.Context, tr models.Training) (models.Training, error) {
	now := time.Now().UTC()
	tr.ID = primitive.NewObjectID()
	tr.CreatedAt = now
	tr.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, tr); err != nil {
		return models.Training{}, err
	}
	return tr, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Training, error) {
	var tr models.Training
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tr)
	if err == mongo.ErrNoDocuments {
		return models.Training{}, ErrTrainingNotFound
	}
	if err != nil {
		return models.Training{}, err
	}
	return tr, nil
}

// List returns training sessions, optionally filtered by category name,
// soonest first.
func (s *Store) List(ctx context.Context, categoria string) ([]models.Training, error) {
	filter := bson.M{}
	if categoria != "" {
		filter["categoria"] = categoria
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var trainings []models.Training
	if err := cur.All(ctx, &trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, tr models.Training) error {
	set := bson.M{
		"categoria":  tr.Categoria,
		"location":   tr.Location,
		"starts_at":  tr.StartsAt,
		"notes":      tr.Notes,
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTrainingNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTrainingNotFound
	}
	return nil
}
