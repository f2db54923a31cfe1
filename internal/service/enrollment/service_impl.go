package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/platform/logger"
	"github.com/linguahub/lingua-api/internal/store"
)

// Verify interface compliance at compile time
var _ EnrollmentService = (*enrollmentServiceImpl)(nil)

// enrollmentServiceImpl implements the EnrollmentService interface.
type enrollmentServiceImpl struct {
	db          *sql.DB
	courses     store.CourseStore
	lessons     store.LessonStore
	enrollments store.EnrollmentStore
	completions store.CompletionStore
	runTx       func(ctx context.Context, fn store.TxFn) error // Injectable for testing
	logger      *slog.Logger
}

// NewEnrollmentService creates a new EnrollmentService implementation.
func NewEnrollmentService(
	db *sql.DB,
	courses store.CourseStore,
	lessons store.LessonStore,
	enrollments store.EnrollmentStore,
	completions store.CompletionStore,
	logger *slog.Logger,
) EnrollmentService {
	if db == nil {
		panic("db cannot be nil")
	}
	if courses == nil {
		panic("courses store cannot be nil")
	}
	if lessons == nil {
		panic("lessons store cannot be nil")
	}
	if enrollments == nil {
		panic("enrollments store cannot be nil")
	}
	if completions == nil {
		panic("completions store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &enrollmentServiceImpl{
		db:          db,
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		completions: completions,
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		logger: logger.With(slog.String("component", "enrollment_service")),
	}
}

// Enroll implements EnrollmentService.Enroll.
func (s *enrollmentServiceImpl) Enroll(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (*domain.Enrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("enrolling user in course",
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()))

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("enrollment target course not found",
				slog.String("course_id", courseID.String()))
			return nil, ErrCourseNotFound
		}
		log.Error("failed to load course for enrollment",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, NewEnrollError("failed to load course", err)
	}

	enrollment, err := domain.NewEnrollment(userID, courseID)
	if err != nil {
		return nil, NewEnrollError("invalid enrollment", err)
	}

	// No prior existence check: the (user_id, course_id) unique constraint
	// is the authority, so a concurrent duplicate loses cleanly here.
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("duplicate enrollment attempt",
				slog.String("user_id", userID.String()),
				slog.String("course_id", courseID.String()))
			return nil, ErrAlreadyEnrolled
		}
		log.Error("failed to create enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return nil, NewEnrollError("failed to create enrollment", err)
	}

	log.Info("user enrolled",
		slog.String("enrollment_id", enrollment.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()))
	return enrollment, nil
}

// ListEnrollments implements EnrollmentService.ListEnrollments.
func (s *enrollmentServiceImpl) ListEnrollments(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.EnrolledCourse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrolled, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list enrollments",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewListEnrollmentsError("failed to list enrollments", err)
	}

	return enrolled, nil
}

// CompleteLesson implements EnrollmentService.CompleteLesson.
// The completion upsert and the progress update commit or roll back together,
// so a stored completion is never visible with stale progress left behind by
// this call.
func (s *enrollmentServiceImpl) CompleteLesson(
	ctx context.Context,
	userID uuid.UUID,
	lessonID uuid.UUID,
) (*domain.LessonCompletion, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("completing lesson",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID.String()))

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("lesson to complete not found",
				slog.String("lesson_id", lessonID.String()))
			return nil, 0, ErrLessonNotFound
		}
		log.Error("failed to load lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lessonID.String()))
		return nil, 0, NewCompleteLessonError("failed to load lesson", err)
	}

	enrollment, err := s.enrollments.GetByUserAndCourse(ctx, userID, lesson.CourseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("completion attempt without enrollment",
				slog.String("user_id", userID.String()),
				slog.String("course_id", lesson.CourseID.String()))
			return nil, 0, ErrNotEnrolled
		}
		log.Error("failed to load enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", lesson.CourseID.String()))
		return nil, 0, NewCompleteLessonError("failed to load enrollment", err)
	}

	completion, err := domain.NewLessonCompletion(userID, lessonID)
	if err != nil {
		return nil, 0, NewCompleteLessonError("invalid completion", err)
	}

	var stored *domain.LessonCompletion
	var progress int
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txCompletions := s.completions.WithTx(tx)
		txEnrollments := s.enrollments.WithTx(tx)
		calculator := NewProgressCalculator(s.lessons.WithTx(tx), txCompletions)

		var txErr error
		stored, txErr = txCompletions.Upsert(ctx, completion)
		if txErr != nil {
			return txErr
		}

		progress, txErr = calculator.Compute(ctx, userID, lesson.CourseID)
		if txErr != nil {
			return txErr
		}

		return txEnrollments.UpdateProgress(ctx, enrollment.ID, progress)
	})
	if err != nil {
		log.Error("failed to complete lesson",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("lesson_id", lessonID.String()))
		return nil, 0, NewCompleteLessonError("failed to record completion", err)
	}

	log.Info("lesson completed",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID.String()),
		slog.String("course_id", lesson.CourseID.String()),
		slog.Int("progress", progress))
	return stored, progress, nil
}
