package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/store"
)

func testEntry(userID uuid.UUID) *domain.DictionaryEntry {
	return &domain.DictionaryEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Word:        "der Hund",
		Translation: "the dog",
		Language:    domain.LanguageGerman,
	}
}

func TestListEntries(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	entryStore := &mockDictionaryStore{
		listByUserFn: func(_ context.Context, uid uuid.UUID, filter store.EntryFilter) ([]*domain.DictionaryEntry, error) {
			require.Equal(t, userID, uid)
			assert.Equal(t, domain.LanguageGerman, filter.Language)
			assert.Equal(t, "hund", filter.Search)
			return []*domain.DictionaryEntry{testEntry(userID)}, nil
		},
	}
	handler := NewDictionaryHandler(entryStore)

	r := httptest.NewRequest(http.MethodGet, "/api/dictionary?language=german&search=hund", nil)
	r = withAuthContext(r, userID, domain.RoleStudent)

	rr := executeRequest(handler.ListEntries, r)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []*domain.DictionaryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "der Hund", resp[0].Word)
}

func TestCreateEntry(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates an entry owned by the caller", func(t *testing.T) {
		t.Parallel()

		var created *domain.DictionaryEntry
		entryStore := &mockDictionaryStore{
			createFn: func(_ context.Context, entry *domain.DictionaryEntry) error {
				created = entry
				return nil
			},
		}
		handler := NewDictionaryHandler(entryStore)

		body := DictionaryEntryRequest{
			Word:        "die Katze",
			Translation: "the cat",
			Language:    "german",
		}
		r := withAuthContext(postJSON(t, "/api/dictionary", body), userID, domain.RoleStudent)

		rr := executeRequest(handler.CreateEntry, r)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, created)
		assert.Equal(t, userID, created.UserID)
	})

	t.Run("rejects a missing translation", func(t *testing.T) {
		t.Parallel()

		handler := NewDictionaryHandler(&mockDictionaryStore{})

		body := DictionaryEntryRequest{Word: "die Katze", Language: "german"}
		r := withAuthContext(postJSON(t, "/api/dictionary", body), userID, domain.RoleStudent)

		rr := executeRequest(handler.CreateEntry, r)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateEntryOwnerScoping(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	entry := testEntry(ownerID)

	entryStore := &mockDictionaryStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.DictionaryEntry, error) {
			e := *entry
			return &e, nil
		},
		updateFn: func(_ context.Context, _ *domain.DictionaryEntry) error { return nil },
	}

	body := DictionaryEntryRequest{
		Word:        "der Hund",
		Translation: "the dog (canine)",
		Language:    "german",
	}

	t.Run("owner updates their entry", func(t *testing.T) {
		t.Parallel()

		handler := NewDictionaryHandler(entryStore)

		r := postJSON(t, "/api/dictionary/x", body)
		r = withAuthContext(r, ownerID, domain.RoleStudent)
		r = withURLParam(r, "id", entry.ID.String())

		rr := executeRequest(handler.UpdateEntry, r)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("someone else's entry reads as not found", func(t *testing.T) {
		t.Parallel()

		handler := NewDictionaryHandler(entryStore)

		r := postJSON(t, "/api/dictionary/x", body)
		r = withAuthContext(r, uuid.New(), domain.RoleStudent)
		r = withURLParam(r, "id", entry.ID.String())

		rr := executeRequest(handler.UpdateEntry, r)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NotContains(t, rr.Body.String(), "permission")
	})
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	entry := testEntry(ownerID)

	t.Run("owner deletes their entry", func(t *testing.T) {
		t.Parallel()

		deleted := false
		entryStore := &mockDictionaryStore{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.DictionaryEntry, error) {
				e := *entry
				return &e, nil
			},
			deleteFn: func(_ context.Context, id uuid.UUID) error {
				assert.Equal(t, entry.ID, id)
				deleted = true
				return nil
			},
		}
		handler := NewDictionaryHandler(entryStore)

		r := httptest.NewRequest(http.MethodDelete, "/api/dictionary/x", nil)
		r = withAuthContext(r, ownerID, domain.RoleStudent)
		r = withURLParam(r, "id", entry.ID.String())

		rr := executeRequest(handler.DeleteEntry, r)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.True(t, deleted)
	})

	t.Run("foreign entry is not deleted", func(t *testing.T) {
		t.Parallel()

		entryStore := &mockDictionaryStore{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.DictionaryEntry, error) {
				e := *entry
				return &e, nil
			},
			deleteFn: func(_ context.Context, _ uuid.UUID) error {
				t.Fatal("delete must not be called for a foreign entry")
				return nil
			},
		}
		handler := NewDictionaryHandler(entryStore)

		r := httptest.NewRequest(http.MethodDelete, "/api/dictionary/x", nil)
		r = withAuthContext(r, uuid.New(), domain.RoleStudent)
		r = withURLParam(r, "id", entry.ID.String())

		rr := executeRequest(handler.DeleteEntry, r)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
