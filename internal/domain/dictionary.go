package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dictionary entry validation errors.
var (
	ErrEmptyEntryID   = errors.New("dictionary entry ID cannot be empty")
	ErrEmptyEntryUser = errors.New("dictionary entry user ID cannot be empty")
	ErrEmptyWord      = errors.New("word cannot be empty")
)

// DictionaryEntry is one word in a user's personal vocabulary notebook.
// Entries are strictly owner-scoped: only the owning user may read or
// mutate them.
type DictionaryEntry struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Word          string    `json:"word"`
	Translation   string    `json:"translation"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Examples      string    `json:"examples,omitempty"`
	Language      Language  `json:"language"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewDictionaryEntry creates a new DictionaryEntry owned by the given user.
// Returns an error if validation fails.
func NewDictionaryEntry(
	userID uuid.UUID,
	word, translation, pronunciation, examples string,
	language Language,
) (*DictionaryEntry, error) {
	entry := &DictionaryEntry{
		ID:            uuid.New(),
		UserID:        userID,
		Word:          strings.TrimSpace(word),
		Translation:   translation,
		Pronunciation: pronunciation,
		Examples:      examples,
		Language:      language,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the DictionaryEntry has valid data.
func (e *DictionaryEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}
	if e.UserID == uuid.Nil {
		return ErrEmptyEntryUser
	}
	if e.Word == "" {
		return ErrEmptyWord
	}
	if !e.Language.IsValid() {
		return ErrInvalidLanguage
	}
	return nil
}
