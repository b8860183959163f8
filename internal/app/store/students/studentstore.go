// internal/app/store/students/studentstore.go
package studentstore

// Terminology: Category References
//   - categories: the multi-valued list on a student (current model)
//   - category:   the legacy single-value column kept for older UI
//     code paths; when the list is non-empty it holds one of its
//     entries (the first, unless a legacy write set it directly)

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pbfagundes/escolinha/internal/domain/models"
)

type Store struct {
	db *sql.DB
}

var ErrStudentNotFound = errors.New("student not found")

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the students table if it does not exist.
// Idempotent; called from bootstrap.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS students (
	id         UUID PRIMARY KEY,
	full_name  TEXT NOT NULL,
	birth_date DATE NOT NULL,
	guardian   TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	categories TEXT[] NOT NULL DEFAULT '{}',
	category   TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS students_categories_idx ON students USING GIN (categories)`)
	return err
}

const studentColumns = `id, full_name, birth_date, guardian, phone, categories, category, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (models.Student, error) {
	var st models.Student
	err := row.Scan(&st.ID, &st.FullName, &st.BirthDate, &st.Guardian, &st.Phone,
		pq.Array(&st.Categories), &st.Category, &st.CreatedAt, &st.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Student{}, ErrStudentNotFound
	}
	if err != nil {
		return models.Student{}, err
	}
	if st.Categories == nil {
		st.Categories = []string{}
	}
	return st, nil
}

func (s *Store) Create(ctx context.Context, st models.Student) (models.Student, error) {
	now := time.Now().UTC()
	st.ID = uuid.New()
	if st.Categories == nil {
		st.Categories = []string{}
	}
	st.CreatedAt = now
	st.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		st.ID, st.FullName, st.BirthDate, st.Guardian, st.Phone,
		pq.Array(st.Categories), st.Category, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (models.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return scanStudent(row)
}

// List returns all students ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY full_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// UpdateInfo updates a student's descriptive fields and, on the legacy
// path, may write the scalar category directly. That bypass of the
// categories list is a backward-compatibility allowance that older UI
// code depends on; it is preserved, not repaired.
func (s *Store) UpdateInfo(ctx context.Context, id uuid.UUID, fullName string, birthDate time.Time, guardian, phone string, legacyCategory *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE students
		 SET full_name = $2, birth_date = $3, guardian = $4, phone = $5,
		     category = COALESCE($6, category), updated_at = $7
		 WHERE id = $1`,
		id, fullName, birthDate, guardian, phone, legacyCategory, time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// Link adds categoryName to the student's list if absent, and sets the
// legacy scalar when it is still unset. The row is locked for the
// read-modify-write so concurrent links cannot lose an update.
// Linking an already-linked category is a no-op.
func (s *Store) Link(ctx context.Context, id uuid.UUID, categoryName string) (models.Student, error) {
	return s.mutateCategories(ctx, id, func(st *models.Student) {
		for _, c := range st.Categories {
			if c == categoryName {
				return
			}
		}
		st.Categories = append(st.Categories, categoryName)
		if st.Category == nil {
			name := categoryName
			st.Category = &name
		}
	})
}

// Unlink removes categoryName from the list. If the legacy scalar held
// that name, it falls back to the first remaining entry, or becomes
// unset when no categories remain. Unlinking an absent category is a
// no-op.
func (s *Store) Unlink(ctx context.Context, id uuid.UUID, categoryName string) (models.Student, error) {
	return s.mutateCategories(ctx, id, func(st *models.Student) {
		kept := st.Categories[:0]
		for _, c := range st.Categories {
			if c != categoryName {
				kept = append(kept, c)
			}
		}
		st.Categories = kept
		if st.Category != nil && *st.Category == categoryName {
			if len(st.Categories) > 0 {
				name := st.Categories[0]
				st.Category = &name
			} else {
				st.Category = nil
			}
		}
	})
}

func (s *Store) mutateCategories(ctx context.Context, id uuid.UUID, mutate func(*models.Student)) (models.Student, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Student{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1 FOR UPDATE`, id)
	st, err := scanStudent(row)
	if err != nil {
		return models.Student{}, err
	}

	mutate(&st)
	st.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE students SET categories = $2, category = $3, updated_at = $4 WHERE id = $1`,
		st.ID, pq.Array(st.Categories), st.Category, st.UpdatedAt)
	if err != nil {
		return models.Student{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// MemberIDs returns the ids of all students associated with the named
// category through either field. A student matching both counts once.
func (s *Store) MemberIDs(ctx context.Context, categoryName string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM students
		 WHERE $1 = ANY(categories) OR category = $1
		 ORDER BY id`, categoryName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id.String())
	}
	return ids, rows.Err()
}

// IsMember evaluates the same union predicate as MemberIDs for a single
// student, without scanning the whole category.
func (s *Store) IsMember(ctx context.Context, id uuid.UUID, categoryName string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM students
			WHERE id = $1 AND ($2 = ANY(categories) OR category = $2)
		 )`, id, categoryName).Scan(&exists)
	return exists, err
}

// Exists reports whether a student id resolves at all.
func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// RenameCategory rewrites every reference to oldName (list entries and
// the legacy scalar) to newName, in one statement so the propagation is
// atomic: it applies to all affected students or to none.
// Returns the number of students touched.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE students
		 SET categories = array_replace(categories, $1, $2),
		     category   = CASE WHEN category = $1 THEN $2 ELSE category END,
		     updated_at = $3
		 WHERE $1 = ANY(categories) OR category = $1`,
		oldName, newName, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
