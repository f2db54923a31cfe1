package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{name: "no lessons", completed: 0, total: 0, want: 0},
		{name: "nothing completed", completed: 0, total: 10, want: 0},
		{name: "everything completed", completed: 10, total: 10, want: 100},
		{name: "one third rounds up", completed: 1, total: 3, want: 33},
		{name: "two thirds rounds up", completed: 2, total: 3, want: 67},
		{name: "one quarter", completed: 1, total: 4, want: 25},
		{name: "half rounds away from zero", completed: 1, total: 200, want: 1},
		{name: "one of six", completed: 1, total: 6, want: 17},
		{name: "five of six", completed: 5, total: 6, want: 83},
		{name: "one of eight rounds half up", completed: 1, total: 8, want: 13},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, progressPercent(tc.completed, tc.total))
		})
	}
}

func TestProgressCalculator_Compute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	courseID := uuid.New()

	t.Run("counts live lessons", func(t *testing.T) {
		t.Parallel()

		calc := NewProgressCalculator(
			&fakeLessonStore{
				countByCourseFn: func(ctx context.Context, cID uuid.UUID) (int, error) {
					assert.Equal(t, courseID, cID)
					return 3, nil
				},
			},
			&fakeCompletionStore{
				countByUserAndCourseFn: func(ctx context.Context, uID, cID uuid.UUID) (int, error) {
					assert.Equal(t, userID, uID)
					return 2, nil
				},
			},
		)

		progress, err := calc.Compute(context.Background(), userID, courseID)
		require.NoError(t, err)
		assert.Equal(t, 67, progress)
	})

	t.Run("empty course is zero percent", func(t *testing.T) {
		t.Parallel()

		calc := NewProgressCalculator(
			&fakeLessonStore{
				countByCourseFn: func(ctx context.Context, cID uuid.UUID) (int, error) {
					return 0, nil
				},
			},
			&fakeCompletionStore{
				countByUserAndCourseFn: func(ctx context.Context, uID, cID uuid.UUID) (int, error) {
					return 0, nil
				},
			},
		)

		progress, err := calc.Compute(context.Background(), userID, courseID)
		require.NoError(t, err)
		assert.Equal(t, 0, progress)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection reset")
		calc := NewProgressCalculator(
			&fakeLessonStore{
				countByCourseFn: func(ctx context.Context, cID uuid.UUID) (int, error) {
					return 0, boom
				},
			},
			&fakeCompletionStore{},
		)

		progress, err := calc.Compute(context.Background(), userID, courseID)
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, progress)
	})
}
