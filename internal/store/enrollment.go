package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
)

// EnrolledCourse pairs an enrollment with the course it belongs to, as
// returned by user-facing enrollment listings.
type EnrolledCourse struct {
	Enrollment domain.Enrollment
	Course     domain.Course
}

// EnrollmentStore defines the interface for enrollment data persistence.
type EnrollmentStore interface {
	// Create saves a new enrollment. The (user_id, course_id) unique
	// constraint is the authority on duplicates: a violation is returned as
	// ErrEnrollmentExists regardless of any earlier existence check.
	Create(ctx context.Context, enrollment *domain.Enrollment) error

	// GetByUserAndCourse retrieves the enrollment linking a user to a course.
	// Returns ErrEnrollmentNotFound if the user is not enrolled.
	GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error)

	// ListByUser returns all of a user's enrollments joined with their
	// courses, most recently enrolled first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]EnrolledCourse, error)

	// UpdateProgress persists a freshly computed progress percentage onto an
	// enrollment. Returns ErrEnrollmentNotFound if the enrollment is gone.
	UpdateProgress(ctx context.Context, enrollmentID uuid.UUID, progress int) error

	// WithTx returns an EnrollmentStore bound to the provided transaction.
	WithTx(tx *sql.Tx) EnrollmentStore
}

// CompletionStore defines the interface for lesson completion persistence.
type CompletionStore interface {
	// Upsert records that a user completed a lesson. If a completion for
	// (user_id, lesson_id) already exists, no duplicate row is created and
	// the completion timestamp is refreshed. Returns the stored completion.
	Upsert(ctx context.Context, completion *domain.LessonCompletion) (*domain.LessonCompletion, error)

	// CountByUserAndCourse returns how many lessons of the given course the
	// user has completed.
	CountByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (int, error)

	// WithTx returns a CompletionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CompletionStore
}
