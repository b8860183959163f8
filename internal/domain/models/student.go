// internal/domain/models/student.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Student represents a registered club member. Students live in the
// relational store, unlike categories/games which are documents.
//
// NOTE:
//   - Categories is the current multi-category model; Category is the
//     legacy single-value field kept for older UI code paths. When
//     Categories is non-empty, Category holds one of its entries
//     (the first, unless a legacy path wrote it directly). Removing a
//     student's last category clears the scalar.
type Student struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	BirthDate time.Time `json:"birth_date"`
	Guardian  string    `json:"guardian,omitempty"`
	Phone     string    `json:"phone,omitempty"`

	Categories []string `json:"categories"`
	Category   *string  `json:"category,omitempty"` // legacy scalar

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
