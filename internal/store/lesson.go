package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
)

// LessonStore defines the interface for lesson data persistence.
type LessonStore interface {
	// Create saves a new lesson to the store.
	// Returns ErrInvalidEntity if the parent course does not exist.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListByCourse returns all lessons of a course ordered by position.
	// Returns an empty slice for a course with no lessons.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)

	// CountByCourse returns the live number of lesson rows for a course.
	// Progress computation uses this count, never the course's declared
	// lessons_count field.
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error)

	// Update modifies an existing lesson.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Update(ctx context.Context, lesson *domain.Lesson) error

	// Delete removes a lesson.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a LessonStore bound to the provided transaction.
	WithTx(tx *sql.Tx) LessonStore
}
