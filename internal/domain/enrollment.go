package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Enrollment and completion validation errors.
var (
	ErrEmptyEnrollmentID     = errors.New("enrollment ID cannot be empty")
	ErrEmptyEnrollmentUser   = errors.New("enrollment user ID cannot be empty")
	ErrEmptyEnrollmentCourse = errors.New("enrollment course ID cannot be empty")
	ErrInvalidProgress       = errors.New("progress must be between 0 and 100")
	ErrEmptyCompletionID     = errors.New("completion ID cannot be empty")
	ErrEmptyCompletionUser   = errors.New("completion user ID cannot be empty")
	ErrEmptyCompletionLesson = errors.New("completion lesson ID cannot be empty")
)

// Enrollment records a user's registration in a course.
//
// At most one enrollment exists per (user, course) pair; the storage layer
// enforces this with a unique constraint. Progress is an integer percentage
// derived from the user's lesson completions and is recomputed whenever a
// completion is recorded, so a stale value is corrected by the next one.
type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CourseID   uuid.UUID `json:"course_id"`
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewEnrollment creates a new Enrollment with zero progress.
// Returns an error if validation fails.
func NewEnrollment(userID, courseID uuid.UUID) (*Enrollment, error) {
	enrollment := &Enrollment{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		Progress:   0,
		EnrolledAt: time.Now().UTC(),
	}

	if err := enrollment.Validate(); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// Validate checks if the Enrollment has valid data.
func (e *Enrollment) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEnrollmentID
	}
	if e.UserID == uuid.Nil {
		return ErrEmptyEnrollmentUser
	}
	if e.CourseID == uuid.Nil {
		return ErrEmptyEnrollmentCourse
	}
	if e.Progress < 0 || e.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

// LessonCompletion records that a user finished a specific lesson.
//
// At most one completion exists per (user, lesson) pair; re-completing a
// lesson refreshes CompletedAt rather than creating a duplicate row.
type LessonCompletion struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewLessonCompletion creates a new LessonCompletion stamped with the
// current time. Returns an error if validation fails.
func NewLessonCompletion(userID, lessonID uuid.UUID) (*LessonCompletion, error) {
	completion := &LessonCompletion{
		ID:          uuid.New(),
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: time.Now().UTC(),
	}

	if err := completion.Validate(); err != nil {
		return nil, err
	}

	return completion, nil
}

// Validate checks if the LessonCompletion has valid data.
func (c *LessonCompletion) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCompletionID
	}
	if c.UserID == uuid.Nil {
		return ErrEmptyCompletionUser
	}
	if c.LessonID == uuid.Nil {
		return ErrEmptyCompletionLesson
	}
	return nil
}
