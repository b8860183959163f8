// internal/domain/models/game.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game statuses. A game starts scheduled and moves to finished or
// cancelled; a finished game cannot be cancelled.
const (
	GameScheduled = "scheduled"
	GameFinished  = "finished"
	GameCancelled = "cancelled"
)

// RosterEntry is one student in a game's lineup (escalação), optionally
// tagged with a position.
type RosterEntry struct {
	StudentID string `bson:"student_id" json:"student_id"`
	Position  string `bson:"position,omitempty" json:"position,omitempty"`
}

// Game represents a match played under a category.
//
// NOTE:
//   - Categoria is a denormalized category *name*, not a foreign key.
//     It is validated against the category directory at write time only;
//     a later category rename intentionally leaves past games' names as
//     a historical record.
//   - Every Escalacao entry must belong to the named category at the
//     moment a write is accepted.
type Game struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Categoria string             `bson:"categoria" json:"categoria"`
	Opponent  string             `bson:"opponent" json:"opponent"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	StartsAt  time.Time          `bson:"starts_at" json:"starts_at"`

	Escalacao []RosterEntry `bson:"escalacao" json:"escalacao"`

	Status    string `bson:"status" json:"status"`
	GoalsFor  *int   `bson:"goals_for,omitempty" json:"goals_for,omitempty"`
	GoalsAway *int   `bson:"goals_away,omitempty" json:"goals_away,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Editable reports whether roster mutations are still allowed.
func (g Game) Editable() bool {
	return g.Status == GameScheduled
}
