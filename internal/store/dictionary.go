package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/domain"
)

// EntryFilter narrows a dictionary listing. Zero values mean "no filter";
// Search matches the word and translation case-insensitively.
type EntryFilter struct {
	Language domain.Language
	Search   string
}

// DictionaryStore defines the interface for dictionary entry persistence.
// All operations are scoped to the owning user.
type DictionaryStore interface {
	// Create saves a new dictionary entry.
	Create(ctx context.Context, entry *domain.DictionaryEntry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DictionaryEntry, error)

	// ListByUser returns the user's entries matching the filter, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, filter EntryFilter) ([]*domain.DictionaryEntry, error)

	// Update modifies an existing entry.
	// Returns ErrEntryNotFound if the entry does not exist.
	Update(ctx context.Context, entry *domain.DictionaryEntry) error

	// Delete removes an entry.
	// Returns ErrEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
