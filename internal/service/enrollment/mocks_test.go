package enrollment

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Function-field fakes for the store interfaces. Tests set only the fields
// they need; calling an unset field panics, which surfaces unexpected store
// usage immediately.

type fakeCourseStore struct {
	createFn  func(ctx context.Context, course *domain.Course) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	listFn    func(ctx context.Context, filter store.CourseFilter) ([]store.CourseWithTeacher, error)
	updateFn  func(ctx context.Context, course *domain.Course) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

var _ store.CourseStore = (*fakeCourseStore)(nil)

func (f *fakeCourseStore) Create(ctx context.Context, course *domain.Course) error {
	return f.createFn(ctx, course)
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCourseStore) List(
	ctx context.Context,
	filter store.CourseFilter,
) ([]store.CourseWithTeacher, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeCourseStore) Update(ctx context.Context, course *domain.Course) error {
	return f.updateFn(ctx, course)
}

func (f *fakeCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

type fakeLessonStore struct {
	createFn        func(ctx context.Context, lesson *domain.Lesson) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	listByCourseFn  func(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)
	countByCourseFn func(ctx context.Context, courseID uuid.UUID) (int, error)
	updateFn        func(ctx context.Context, lesson *domain.Lesson) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

var _ store.LessonStore = (*fakeLessonStore)(nil)

func (f *fakeLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	return f.createFn(ctx, lesson)
}

func (f *fakeLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeLessonStore) ListByCourse(
	ctx context.Context,
	courseID uuid.UUID,
) ([]*domain.Lesson, error) {
	return f.listByCourseFn(ctx, courseID)
}

func (f *fakeLessonStore) CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	return f.countByCourseFn(ctx, courseID)
}

func (f *fakeLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	return f.updateFn(ctx, lesson)
}

func (f *fakeLessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeLessonStore) WithTx(tx *sql.Tx) store.LessonStore { return f }

type fakeEnrollmentStore struct {
	createFn             func(ctx context.Context, enrollment *domain.Enrollment) error
	getByUserAndCourseFn func(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error)
	listByUserFn         func(ctx context.Context, userID uuid.UUID) ([]store.EnrolledCourse, error)
	updateProgressFn     func(ctx context.Context, enrollmentID uuid.UUID, progress int) error
}

var _ store.EnrollmentStore = (*fakeEnrollmentStore)(nil)

func (f *fakeEnrollmentStore) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	return f.createFn(ctx, enrollment)
}

func (f *fakeEnrollmentStore) GetByUserAndCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (*domain.Enrollment, error) {
	return f.getByUserAndCourseFn(ctx, userID, courseID)
}

func (f *fakeEnrollmentStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.EnrolledCourse, error) {
	return f.listByUserFn(ctx, userID)
}

func (f *fakeEnrollmentStore) UpdateProgress(
	ctx context.Context,
	enrollmentID uuid.UUID,
	progress int,
) error {
	return f.updateProgressFn(ctx, enrollmentID, progress)
}

func (f *fakeEnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore { return f }

type fakeCompletionStore struct {
	upsertFn               func(ctx context.Context, completion *domain.LessonCompletion) (*domain.LessonCompletion, error)
	countByUserAndCourseFn func(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}

var _ store.CompletionStore = (*fakeCompletionStore)(nil)

func (f *fakeCompletionStore) Upsert(
	ctx context.Context,
	completion *domain.LessonCompletion,
) (*domain.LessonCompletion, error) {
	return f.upsertFn(ctx, completion)
}

func (f *fakeCompletionStore) CountByUserAndCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (int, error) {
	return f.countByUserAndCourseFn(ctx, userID, courseID)
}

func (f *fakeCompletionStore) WithTx(tx *sql.Tx) store.CompletionStore { return f }

// passthroughTx runs the transaction function directly against the fakes'
// WithTx(nil) copies, standing in for a real database transaction.
func passthroughTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}
