package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lesson validation errors.
var (
	ErrEmptyLessonID      = errors.New("lesson ID cannot be empty")
	ErrEmptyLessonCourse  = errors.New("lesson course ID cannot be empty")
	ErrEmptyLessonTitle   = errors.New("lesson title cannot be empty")
	ErrInvalidLessonOrder = errors.New("lesson position must be positive")
)

// Lesson represents a single lesson within a course.
//
// Position orders lessons within their course. The schema does not enforce
// uniqueness of positions; duplicate positions sort by creation time.
type Lesson struct {
	ID              uuid.UUID `json:"id"`
	CourseID        uuid.UUID `json:"course_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Position        int       `json:"position"`
	DurationMinutes int       `json:"duration_minutes"`
	VideoURL        string    `json:"video_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewLesson creates a new Lesson belonging to the given course.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewLesson(
	courseID uuid.UUID,
	title, content string,
	position, durationMinutes int,
	videoURL string,
) (*Lesson, error) {
	lesson := &Lesson{
		ID:              uuid.New(),
		CourseID:        courseID,
		Title:           title,
		Content:         content,
		Position:        position,
		DurationMinutes: durationMinutes,
		VideoURL:        videoURL,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
// Returns an error if any field fails validation.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLessonID
	}
	if l.CourseID == uuid.Nil {
		return ErrEmptyLessonCourse
	}
	if l.Title == "" {
		return ErrEmptyLessonTitle
	}
	if l.Position < 1 {
		return ErrInvalidLessonOrder
	}
	return nil
}
