package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
)

// CourseFilter narrows a catalog listing. Zero values mean "no filter".
type CourseFilter struct {
	Language domain.Language
	Level    domain.Level
	Popular  *bool
}

// CourseWithTeacher pairs a course with its teacher's display name for
// catalog listings.
type CourseWithTeacher struct {
	Course      domain.Course
	TeacherName string
}

// CourseStore defines the interface for course data persistence.
type CourseStore interface {
	// Create saves a new course to the store.
	// Returns ErrInvalidEntity if the teacher does not exist.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by its unique ID.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// List returns courses matching the filter, newest first, each paired
	// with its teacher's name. Returns an empty slice when nothing matches.
	List(ctx context.Context, filter CourseFilter) ([]CourseWithTeacher, error)

	// Update modifies an existing course.
	// Returns ErrCourseNotFound if the course does not exist.
	Update(ctx context.Context, course *domain.Course) error

	// Delete removes a course and, via cascade, its lessons.
	// Returns ErrCourseNotFound if the course does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
