// internal/domain/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category represents an age/skill cohort that students belong to and
// games/trainings are scheduled under.
//
// NOTE:
//   - MemberIDs and MemberCount are a derived cache recomputed from the
//     student records; they are never hand-edited. The source of truth
//     for membership is the students' own category fields.
//   - Name uniqueness is case-insensitive, enforced through the unique
//     index on NameCI.
type Category struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	Description string             `bson:"description" json:"description"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`

	// Optional age bounds; when both are set, MaxAge >= MinAge.
	MinAge *int `bson:"min_age,omitempty" json:"min_age,omitempty"`
	MaxAge *int `bson:"max_age,omitempty" json:"max_age,omitempty"`

	Status string `bson:"status" json:"status"`

	// Derived membership cache.
	MemberIDs   []string `bson:"member_ids" json:"member_ids"`
	MemberCount int      `bson:"member_count" json:"member_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
