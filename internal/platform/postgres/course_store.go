package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/platform/logger"
	"github.com/linguahub/lingua-api/internal/store"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CourseStore implements the store.CourseStore interface using a PostgreSQL
// database as the storage backend.
type CourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCourseStore creates a new PostgreSQL implementation of the CourseStore
// interface. If logger is nil, the default logger is used.
func NewCourseStore(db store.DBTX, logger *slog.Logger) *CourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure CourseStore implements store.CourseStore.
var _ store.CourseStore = (*CourseStore)(nil)

// Create implements store.CourseStore.Create.
func (s *CourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during create",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	query := `
		INSERT INTO courses (id, teacher_id, title, description, language, level,
			price_cents, duration_weeks, lessons_count, image_url, is_popular, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		course.ID,
		course.TeacherID,
		course.Title,
		course.Description,
		course.Language,
		course.Level,
		course.PriceCents,
		course.DurationWeeks,
		course.LessonsCount,
		course.ImageURL,
		course.IsPopular,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()),
			slog.String("teacher_id", course.TeacherID.String()))
		return MapError(err)
	}

	log.Info("course created",
		slog.String("course_id", course.ID.String()),
		slog.String("teacher_id", course.TeacherID.String()))
	return nil
}

// GetByID implements store.CourseStore.GetByID.
func (s *CourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, teacher_id, title, description, language, level,
			price_cents, duration_weeks, lessons_count, image_url, is_popular, created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	var course domain.Course
	var language, level string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.TeacherID,
		&course.Title,
		&course.Description,
		&language,
		&level,
		&course.PriceCents,
		&course.DurationWeeks,
		&course.LessonsCount,
		&course.ImageURL,
		&course.IsPopular,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, MapError(err)
	}

	course.Language = domain.Language(language)
	course.Level = domain.Level(level)
	return &course, nil
}

// List implements store.CourseStore.List. Filters are optional, so the query
// is assembled dynamically; results come back newest first with the teacher's
// name joined in.
func (s *CourseStore) List(
	ctx context.Context,
	filter store.CourseFilter,
) ([]store.CourseWithTeacher, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := psql.
		Select(
			"c.id", "c.teacher_id", "c.title", "c.description", "c.language", "c.level",
			"c.price_cents", "c.duration_weeks", "c.lessons_count", "c.image_url",
			"c.is_popular", "c.created_at", "c.updated_at",
			"u.first_name", "u.last_name",
		).
		From("courses c").
		Join("users u ON u.id = c.teacher_id").
		OrderBy("c.created_at DESC")

	if filter.Language != "" {
		builder = builder.Where(sq.Eq{"c.language": filter.Language})
	}
	if filter.Level != "" {
		builder = builder.Where(sq.Eq{"c.level": filter.Level})
	}
	if filter.Popular != nil {
		builder = builder.Where(sq.Eq{"c.is_popular": *filter.Popular})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	courses := []store.CourseWithTeacher{}
	for rows.Next() {
		var row store.CourseWithTeacher
		var language, level, firstName, lastName string
		err := rows.Scan(
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
			&firstName,
			&lastName,
		)
		if err != nil {
			log.Error("failed to scan course row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		row.Course.Language = domain.Language(language)
		row.Course.Level = domain.Level(level)
		row.TeacherName = firstName + " " + lastName
		courses = append(courses, row)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning course rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return courses, nil
}

// Update implements store.CourseStore.Update.
func (s *CourseStore) Update(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during update",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	query := `
		UPDATE courses
		SET title = $1, description = $2, language = $3, level = $4,
			price_cents = $5, duration_weeks = $6, lessons_count = $7,
			image_url = $8, is_popular = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		course.Title,
		course.Description,
		course.Language,
		course.Level,
		course.PriceCents,
		course.DurationWeeks,
		course.LessonsCount,
		course.ImageURL,
		course.IsPopular,
		time.Now().UTC(),
		course.ID,
	)
	if err != nil {
		log.Error("failed to update course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrCourseNotFound)
}

// Delete implements store.CourseStore.Delete. Lessons cascade at the schema
// level.
func (s *CourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	log.Info("course deleted", slog.String("course_id", id.String()))
	return nil
}
