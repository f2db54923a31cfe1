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

// DictionaryStore implements the store.DictionaryStore interface using a
// PostgreSQL database as the storage backend.
type DictionaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDictionaryStore creates a new PostgreSQL implementation of the
// DictionaryStore interface. If logger is nil, the default logger is used.
func NewDictionaryStore(db store.DBTX, logger *slog.Logger) *DictionaryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DictionaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "dictionary_store")),
	}
}

// Ensure DictionaryStore implements store.DictionaryStore.
var _ store.DictionaryStore = (*DictionaryStore)(nil)

// Create implements store.DictionaryStore.Create.
func (s *DictionaryStore) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("dictionary entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO dictionary_entries (id, user_id, word, translation, pronunciation, examples, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Word,
		entry.Translation,
		entry.Pronunciation,
		entry.Examples,
		entry.Language,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create dictionary entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return MapError(err)
	}

	log.Info("dictionary entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()))
	return nil
}

// GetByID implements store.DictionaryStore.GetByID.
func (s *DictionaryStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.DictionaryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, word, translation, pronunciation, examples, language, created_at, updated_at
		FROM dictionary_entries
		WHERE id = $1
	`

	var entry domain.DictionaryEntry
	var language string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Word,
		&entry.Translation,
		&entry.Pronunciation,
		&entry.Examples,
		&language,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
		log.Error("failed to get dictionary entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, MapError(err)
	}

	entry.Language = domain.Language(language)
	return &entry, nil
}

// ListByUser implements store.DictionaryStore.ListByUser. The search filter
// matches word or translation case-insensitively.
func (s *DictionaryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.EntryFilter,
) ([]*domain.DictionaryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	builder := psql.
		Select("id", "user_id", "word", "translation", "pronunciation",
			"examples", "language", "created_at", "updated_at").
		From("dictionary_entries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if filter.Language != "" {
		builder = builder.Where(sq.Eq{"language": filter.Language})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"word": pattern},
			sq.ILike{"translation": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list dictionary entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	entries := []*domain.DictionaryEntry{}
	for rows.Next() {
		var entry domain.DictionaryEntry
		var language string
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Word,
			&entry.Translation,
			&entry.Pronunciation,
			&entry.Examples,
			&language,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan dictionary entry row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		entry.Language = domain.Language(language)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning dictionary entry rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return entries, nil
}

// Update implements store.DictionaryStore.Update.
func (s *DictionaryStore) Update(ctx context.Context, entry *domain.DictionaryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("dictionary entry validation failed during update",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		UPDATE dictionary_entries
		SET word = $1, translation = $2, pronunciation = $3, examples = $4, language = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		entry.Word,
		entry.Translation,
		entry.Pronunciation,
		entry.Examples,
		entry.Language,
		time.Now().UTC(),
		entry.ID,
	)
	if err != nil {
		log.Error("failed to update dictionary entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return MapError(err)
	}

	return checkRowsAffected(result, store.ErrEntryNotFound)
}

// Delete implements store.DictionaryStore.Delete.
func (s *DictionaryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM dictionary_entries WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete dictionary entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return MapError(err)
	}

	if err := checkRowsAffected(result, store.ErrEntryNotFound); err != nil {
		return err
	}

	log.Info("dictionary entry deleted", slog.String("entry_id", id.String()))
	return nil
}
