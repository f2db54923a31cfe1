package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/platform/logger"
	"github.com/linguahub/lingua-api/internal/store"
)

// LessonStore implements the store.LessonStore interface using a PostgreSQL
// database as the storage backend.
type LessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLessonStore creates a new PostgreSQL implementation of the LessonStore
// interface. If logger is nil, the default logger is used.
func NewLessonStore(db store.DBTX, logger *slog.Logger) *LessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure LessonStore implements store.LessonStore.
var _ store.LessonStore = (*LessonStore)(nil)

// WithTx implements store.LessonStore.WithTx.
func (s *LessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &LessonStore{db: tx, logger: s.logger}
}

// Create implements store.LessonStore.Create.
func (s *LessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	query := `
		INSERT INTO lessons (id, course_id, title, content, position, duration_minutes, video_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		lesson.ID,
		lesson.CourseID,
		lesson.Title,
		lesson.Content,
		lesson.Position,
		lesson.DurationMinutes,
		lesson.VideoURL,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()),
			slog.String("course_id", lesson.CourseID.String()))
		return MapError(err)
	}

	log.Info("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("course_id", lesson.CourseID.String()))
	return nil
}

// GetByID implements store.LessonStore.GetByID.
func (s *LessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, course_id, title, content, position, duration_minutes, video_url, created_at, updated_at
		FROM lessons
		WHERE id = $1
	`

	var lesson domain.Lesson
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Content,
		&lesson.Position,
		&lesson.DurationMinutes,
		&lesson.VideoURL,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		log.Error("failed to get lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return nil, MapError(err)
	}

	return &lesson, nil
}

// ListByCourse implements store.LessonStore.ListByCourse. Duplicate positions
// are allowed by the schema and sort by creation time.
func (s *LessonStore) ListByCourse(
	ctx context.Context,
	courseID uuid.UUID,
) ([]*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, course_id, title, content, position, duration_minutes, video_url, created_at, updated_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY position ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		log.Error("failed to list lessons",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	lessons := []*domain.Lesson{}
	for rows.Next() {
		var lesson domain.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Content,
			&lesson.Position,
			&lesson.DurationMinutes,
			&lesson.VideoURL,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan lesson row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		lessons = append(lessons, &lesson)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning lesson rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return lessons, nil
}

// CountByCourse implements store.LessonStore.CountByCourse.
func (s *LessonStore) CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM lessons WHERE course_id = $1`,
		courseID,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count lessons",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// Update implements store.LessonStore.Update.
func (s *LessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during update",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return err
	}

	query := `
		UPDATE lessons
		SET title = $1, content = $2, position = $3, duration_minutes = $4, video_url = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		lesson.Title,
		lesson.Content,
		lesson.Position,
		lesson.DurationMinutes,
		lesson.VideoURL,
		time.Now().UTC(),
		lesson.ID,
	)
	if err != nil {
		log.Error("failed to update lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrLessonNotFound)
}

// Delete implements store.LessonStore.Delete. Completions referencing the
// lesson cascade at the schema level.
func (s *LessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrLessonNotFound); err != nil {
		return err
	}

	log.Info("lesson deleted", slog.String("lesson_id", id.String()))
	return nil
}
