package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/store"
)

// EnrollmentService provides the course enrollment and lesson progress
// workflow: enrolling users in courses, listing their enrollments, and
// recording lesson completions with an up-to-date progress percentage.
type EnrollmentService interface {
	// Enroll registers the user in the course with zero progress.
	//
	// Returns:
	//   - (*domain.Enrollment, nil): The newly created enrollment
	//   - (nil, ErrCourseNotFound): If the course does not exist
	//   - (nil, ErrAlreadyEnrolled): If the user is already enrolled; the
	//     (user, course) unique constraint decides this, so concurrent
	//     duplicate requests produce exactly one enrollment
	//   - (nil, error): Any other error, typically from the database
	//
	// Enroll is deliberately not idempotent: repeating it is a conflict,
	// not a no-op.
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error)

	// ListEnrollments returns the user's enrollments joined with their
	// courses, most recently enrolled first. A user with no enrollments gets
	// an empty slice, not an error.
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]store.EnrolledCourse, error)

	// CompleteLesson records that the user finished the lesson and refreshes
	// the enrollment's progress percentage in the same transaction.
	//
	// Completing an already-completed lesson refreshes its timestamp instead
	// of creating a duplicate, so the call is safely repeatable and progress
	// never counts a lesson twice.
	//
	// Returns:
	//   - (*domain.LessonCompletion, progress, nil): The stored completion and
	//     the recomputed progress percentage
	//   - (nil, 0, ErrLessonNotFound): If the lesson does not exist
	//   - (nil, 0, ErrNotEnrolled): If the user has no enrollment in the
	//     lesson's course
	//   - (nil, 0, error): Any other error; the transaction is rolled back and
	//     neither the completion nor the progress update is visible
	CompleteLesson(
		ctx context.Context,
		userID uuid.UUID,
		lessonID uuid.UUID,
	) (*domain.LessonCompletion, int, error)
}

// Common error types for EnrollmentService
var (
	// ErrCourseNotFound indicates that the course does not exist.
	ErrCourseNotFound = errors.New("course not found")

	// ErrLessonNotFound indicates that the lesson does not exist.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrAlreadyEnrolled indicates the user already holds an enrollment in the course.
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")

	// ErrNotEnrolled indicates the user has no enrollment in the lesson's course.
	ErrNotEnrolled = errors.New("user is not enrolled in this course")
)

// ServiceError wraps errors from the enrollment service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "enroll", "complete_lesson")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewEnrollError returns a new ServiceError for the enroll operation.
func NewEnrollError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "enroll",
		Message:   message,
		Err:       err,
	}
}

// NewCompleteLessonError returns a new ServiceError for the complete_lesson operation.
func NewCompleteLessonError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "complete_lesson",
		Message:   message,
		Err:       err,
	}
}

// NewListEnrollmentsError returns a new ServiceError for the list_enrollments operation.
func NewListEnrollmentsError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "list_enrollments",
		Message:   message,
		Err:       err,
	}
}
