package enrollment

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/store"
)

// ProgressCalculator derives a course progress percentage from lesson
// completions. The lesson total is always counted live from the lessons
// table; the denormalized lessons_count column on courses is display-only
// and never feeds this calculation.
type ProgressCalculator struct {
	lessons     store.LessonStore
	completions store.CompletionStore
}

// NewProgressCalculator creates a ProgressCalculator over the given stores.
// Passing transaction-bound stores yields a transaction-bound calculator.
func NewProgressCalculator(
	lessons store.LessonStore,
	completions store.CompletionStore,
) *ProgressCalculator {
	if lessons == nil {
		panic("lessons store cannot be nil")
	}
	if completions == nil {
		panic("completions store cannot be nil")
	}
	return &ProgressCalculator{lessons: lessons, completions: completions}
}

// Compute returns the user's progress percentage for the course.
// A course with no lessons is 0%, never a division by zero.
func (c *ProgressCalculator) Compute(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (int, error) {
	total, err := c.lessons.CountByCourse(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count course lessons: %w", err)
	}

	completed, err := c.completions.CountByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return progressPercent(completed, total), nil
}

// progressPercent rounds half away from zero: 1/3 is 33, 2/3 is 67.
func progressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
