// internal/domain/models/training.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Training represents a scheduled training session for a category.
// Like Game, it references the category by denormalized name, validated
// only at write time.
type Training struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Categoria string             `bson:"categoria" json:"categoria"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	StartsAt  time.Time          `bson:"starts_at" json:"starts_at"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
