package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Course validation errors.
var (
	ErrEmptyCourseID      = errors.New("course ID cannot be empty")
	ErrEmptyCourseTeacher = errors.New("course teacher ID cannot be empty")
	ErrEmptyCourseTitle   = errors.New("course title cannot be empty")
	ErrInvalidLessonCount = errors.New("declared lessons count cannot be negative")
)

// Language is a language taught on the platform.
type Language string

// Supported course and dictionary languages.
const (
	LanguageGerman  Language = "german"
	LanguageSpanish Language = "spanish"
	LanguageFrench  Language = "french"
	LanguageItalian Language = "italian"
	LanguageEnglish Language = "english"
)

// IsValid reports whether the language is in the supported set.
func (l Language) IsValid() bool {
	switch l {
	case LanguageGerman, LanguageSpanish, LanguageFrench, LanguageItalian, LanguageEnglish:
		return true
	}
	return false
}

// Level is a CEFR proficiency level.
type Level string

// CEFR levels.
const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// IsValid reports whether the level is a known CEFR level.
func (l Level) IsValid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// Course represents a language course owned by exactly one teacher.
//
// LessonsCount is denormalized display metadata declared at creation time.
// It is never reconciled with the actual lesson rows; progress computation
// must count lessons directly and ignore this field.
type Course struct {
	ID            uuid.UUID `json:"id"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Language      Language  `json:"language"`
	Level         Level     `json:"level"`
	PriceCents    int       `json:"price_cents"`
	DurationWeeks int       `json:"duration_weeks"`
	LessonsCount  int       `json:"lessons_count"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsPopular     bool      `json:"is_popular"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCourse creates a new Course owned by the given teacher.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCourse(
	teacherID uuid.UUID,
	title, description string,
	language Language,
	level Level,
	priceCents, durationWeeks, lessonsCount int,
	imageURL string,
) (*Course, error) {
	course := &Course{
		ID:            uuid.New(),
		TeacherID:     teacherID,
		Title:         title,
		Description:   description,
		Language:      language,
		Level:         level,
		PriceCents:    priceCents,
		DurationWeeks: durationWeeks,
		LessonsCount:  lessonsCount,
		ImageURL:      imageURL,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
// Returns an error if any field fails validation.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCourseID
	}
	if c.TeacherID == uuid.Nil {
		return ErrEmptyCourseTeacher
	}
	if c.Title == "" {
		return ErrEmptyCourseTitle
	}
	if !c.Language.IsValid() {
		return ErrInvalidLanguage
	}
	if !c.Level.IsValid() {
		return ErrInvalidLevel
	}
	if c.LessonsCount < 0 {
		return ErrInvalidLessonCount
	}
	return nil
}
