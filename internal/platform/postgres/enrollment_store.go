package postgres

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

// EnrollmentStore implements the store.EnrollmentStore interface using a
// PostgreSQL database as the storage backend.
type EnrollmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewEnrollmentStore creates a new PostgreSQL implementation of the
// EnrollmentStore interface. If logger is nil, the default logger is used.
func NewEnrollmentStore(db store.DBTX, logger *slog.Logger) *EnrollmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EnrollmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "enrollment_store")),
	}
}

// Ensure EnrollmentStore implements store.EnrollmentStore.
var _ store.EnrollmentStore = (*EnrollmentStore)(nil)

// WithTx implements store.EnrollmentStore.WithTx.
func (s *EnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore {
	return &EnrollmentStore{db: tx, logger: s.logger}
}

// Create implements store.EnrollmentStore.Create. The unique constraint on
// (user_id, course_id) is the single authority on duplicates: two concurrent
// enrollments for the same pair race at the index, and the loser gets
// store.ErrEnrollmentExists.
func (s *EnrollmentStore) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := enrollment.Validate(); err != nil {
		log.Warn("enrollment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return err
	}

	query := `
		INSERT INTO enrollments (id, user_id, course_id, progress, enrolled_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		enrollment.ID,
		enrollment.UserID,
		enrollment.CourseID,
		enrollment.Progress,
		enrollment.EnrolledAt,
	)
	if err != nil {
		mapped := MapUniqueViolation(err, store.ErrEnrollmentExists)
		if errors.Is(mapped, store.ErrEnrollmentExists) {
			log.Warn("duplicate enrollment",
				slog.String("user_id", enrollment.UserID.String()),
				slog.String("course_id", enrollment.CourseID.String()))
		} else {
			log.Error("failed to create enrollment",
				slog.String("error", err.Error()),
				slog.String("enrollment_id", enrollment.ID.String()))
		}
		return mapped
	}

	log.Info("enrollment created",
		slog.String("enrollment_id", enrollment.ID.String()),
		slog.String("user_id", enrollment.UserID.String()),
		slog.String("course_id", enrollment.CourseID.String()))
	return nil
}

// GetByUserAndCourse implements store.EnrollmentStore.GetByUserAndCourse.
func (s *EnrollmentStore) GetByUserAndCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (*domain.Enrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, course_id, progress, enrolled_at
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
	`

	var enrollment domain.Enrollment
	err := s.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.EnrolledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEnrollmentNotFound
		}
		log.Error("failed to get enrollment",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return nil, MapError(err)
	}

	return &enrollment, nil
}

// ListByUser implements store.EnrollmentStore.ListByUser.
func (s *EnrollmentStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]store.EnrolledCourse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT e.id, e.user_id, e.course_id, e.progress, e.enrolled_at,
			c.id, c.teacher_id, c.title, c.description, c.language, c.level,
			c.price_cents, c.duration_weeks, c.lessons_count, c.image_url,
			c.is_popular, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list enrollments",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	enrolled := []store.EnrolledCourse{}
	for rows.Next() {
		var row store.EnrolledCourse
		var language, level string
		err := rows.Scan(
			&row.Enrollment.ID,
			&row.Enrollment.UserID,
			&row.Enrollment.CourseID,
			&row.Enrollment.Progress,
			&row.Enrollment.EnrolledAt,
			&row.Course.ID,
			&row.Course.TeacherID,
			&row.Course.Title,
			&row.Course.Description,
			&language,
			&level,
			&row.Course.PriceCents,
			&row.Course.DurationWeeks,
			&row.Course.LessonsCount,
			&row.Course.ImageURL,
			&row.Course.IsPopular,
			&row.Course.CreatedAt,
			&row.Course.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan enrollment row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		row.Course.Language = domain.Language(language)
		row.Course.Level = domain.Level(level)
		enrolled = append(enrolled, row)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning enrollment rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return enrolled, nil
}

// UpdateProgress implements store.EnrollmentStore.UpdateProgress.
func (s *EnrollmentStore) UpdateProgress(
	ctx context.Context,
	enrollmentID uuid.UUID,
	progress int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE enrollments SET progress = $1 WHERE id = $2`,
		progress,
		enrollmentID,
	)
	if err != nil {
		log.Error("failed to update enrollment progress",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollmentID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrEnrollmentNotFound)
}

// CompletionStore implements the store.CompletionStore interface using a
// PostgreSQL database as the storage backend.
type CompletionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCompletionStore creates a new PostgreSQL implementation of the
// CompletionStore interface. If logger is nil, the default logger is used.
func NewCompletionStore(db store.DBTX, logger *slog.Logger) *CompletionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CompletionStore{
		db:     db,
		logger: logger.With(slog.String("component", "completion_store")),
	}
}

// Ensure CompletionStore implements store.CompletionStore.
var _ store.CompletionStore = (*CompletionStore)(nil)

// WithTx implements store.CompletionStore.WithTx.
func (s *CompletionStore) WithTx(tx *sql.Tx) store.CompletionStore {
	return &CompletionStore{db: tx, logger: s.logger}
}

// Upsert implements store.CompletionStore.Upsert. The ON CONFLICT clause on
// the (user_id, lesson_id) unique index makes repeat completions a timestamp
// refresh instead of a duplicate row, including under concurrency. RETURNING
// hands back the row that actually landed, so the caller sees the original
// ID on a refresh.
func (s *CompletionStore) Upsert(
	ctx context.Context,
	completion *domain.LessonCompletion,
) (*domain.LessonCompletion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := completion.Validate(); err != nil {
		log.Warn("completion validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("completion_id", completion.ID.String()))
		return nil, err
	}

	query := `
		INSERT INTO lesson_completions (id, user_id, lesson_id, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, lesson_id)
		DO UPDATE SET completed_at = EXCLUDED.completed_at
		RETURNING id, user_id, lesson_id, completed_at
	`

	var stored domain.LessonCompletion
	err := s.db.QueryRowContext(
		ctx,
		query,
		completion.ID,
		completion.UserID,
		completion.LessonID,
		completion.CompletedAt,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.LessonID,
		&stored.CompletedAt,
	)
	if err != nil {
		log.Error("failed to upsert lesson completion",
			slog.String("error", err.Error()),
			slog.String("user_id", completion.UserID.String()),
			slog.String("lesson_id", completion.LessonID.String()))
		return nil, MapError(err)
	}

	log.Info("lesson completion recorded",
		slog.String("completion_id", stored.ID.String()),
		slog.String("user_id", stored.UserID.String()),
		slog.String("lesson_id", stored.LessonID.String()))
	return &stored, nil
}

// CountByUserAndCourse implements store.CompletionStore.CountByUserAndCourse.
// The join scopes the count to the course's current lessons, so completions
// of since-deleted lessons never inflate progress.
func (s *CompletionStore) CountByUserAndCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM lesson_completions lc
		JOIN lessons l ON l.id = lc.lesson_id
		WHERE lc.user_id = $1 AND l.course_id = $2
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count)
	if err != nil {
		log.Error("failed to count lesson completions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("course_id", courseID.String()))
		return 0, MapError(err)
	}

	return count, nil
}
