package api

import (
	"github.com/google/uuid"

	"github.com/linguahub/lingua-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Role is optional and defaults to student; unknown roles are rejected.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Role      string `json:"role"       validate:"omitempty,oneof=student teacher admin"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Role is the authenticated user's role
	Role domain.Role `json:"role"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// UpdateProfileRequest defines the payload for profile updates. Email, role,
// and password are fixed at registration and not updatable here.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// CourseRequest defines the payload for creating or updating a course.
type CourseRequest struct {
	Title         string `json:"title"          validate:"required,max=200"`
	Description   string `json:"description"    validate:"max=5000"`
	Language      string `json:"language"       validate:"required"`
	Level         string `json:"level"          validate:"required"`
	PriceCents    int    `json:"price_cents"    validate:"gte=0"`
	DurationWeeks int    `json:"duration_weeks" validate:"gte=0"`
	LessonsCount  int    `json:"lessons_count"  validate:"gte=0"`
	ImageURL      string `json:"image_url"      validate:"omitempty,url,max=500"`
	IsPopular     bool   `json:"is_popular"`
}

// CourseResponse pairs a course with its teacher's display name.
type CourseResponse struct {
	domain.Course
	TeacherName string `json:"teacher_name,omitempty"`
}

// CourseDetailResponse is a course with its lessons, ordered by position.
type CourseDetailResponse struct {
	domain.Course
	Lessons []*domain.Lesson `json:"lessons"`
}

// LessonRequest defines the payload for creating or updating a lesson.
type LessonRequest struct {
	Title           string `json:"title"            validate:"required,max=200"`
	Content         string `json:"content"          validate:"max=50000"`
	Position        int    `json:"position"         validate:"required,gte=1"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	VideoURL        string `json:"video_url"        validate:"omitempty,url,max=500"`
}

// EnrolledCourseResponse is one row of a user's enrollment listing.
type EnrolledCourseResponse struct {
	Enrollment domain.Enrollment `json:"enrollment"`
	Course     domain.Course     `json:"course"`
}

// CompleteLessonResponse reports a stored completion together with the
// recomputed course progress percentage.
type CompleteLessonResponse struct {
	Completion *domain.LessonCompletion `json:"completion"`
	Progress   int                      `json:"progress"`
}

// DictionaryEntryRequest defines the payload for creating or updating a
// dictionary entry.
type DictionaryEntryRequest struct {
	Word          string `json:"word"          validate:"required,max=200"`
	Translation   string `json:"translation"   validate:"required,max=500"`
	Pronunciation string `json:"pronunciation" validate:"max=200"`
	Examples      string `json:"examples"      validate:"max=2000"`
	Language      string `json:"language"      validate:"required"`
}
