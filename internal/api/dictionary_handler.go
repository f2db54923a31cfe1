package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linguahub/lingua-api/internal/api/shared"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/store"
)

// DictionaryHandler handles personal dictionary API requests. Entries are
// strictly owner-scoped: a user can only ever see or mutate their own.
type DictionaryHandler struct {
	entryStore store.DictionaryStore
	validator  *validator.Validate
}

// NewDictionaryHandler creates a new DictionaryHandler with the given dependencies.
func NewDictionaryHandler(entryStore store.DictionaryStore) *DictionaryHandler {
	return &DictionaryHandler{
		entryStore: entryStore,
		validator:  validator.New(),
	}
}

// ListEntries handles GET /api/dictionary with optional language and search
// query parameters.
func (h *DictionaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter := store.EntryFilter{
		Language: domain.Language(r.URL.Query().Get("language")),
		Search:   r.URL.Query().Get("search"),
	}

	entries, err := h.entryStore.ListByUser(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list dictionary entries")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// CreateEntry handles POST /api/dictionary.
func (h *DictionaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DictionaryEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entry, err := domain.NewDictionaryEntry(
		userID,
		req.Word,
		req.Translation,
		req.Pronunciation,
		req.Examples,
		domain.Language(req.Language),
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid entry data: "+err.Error())
		return
	}

	if err := h.entryStore.Create(r.Context(), entry); err != nil {
		HandleAPIError(w, r, err, "Failed to create dictionary entry")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// UpdateEntry handles PUT /api/dictionary/{id}.
func (h *DictionaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	entryID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req DictionaryEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entry, err := h.entryStore.GetByID(r.Context(), entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Entries belonging to someone else read as not found, never as forbidden,
	// so the API doesn't confirm another user's entry IDs.
	if entry.UserID != userID {
		HandleAPIError(w, r, store.ErrEntryNotFound, "")
		return
	}

	entry.Word = req.Word
	entry.Translation = req.Translation
	entry.Pronunciation = req.Pronunciation
	entry.Examples = req.Examples
	entry.Language = domain.Language(req.Language)

	if err := entry.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid entry data: "+err.Error())
		return
	}

	if err := h.entryStore.Update(r.Context(), entry); err != nil {
		HandleAPIError(w, r, err, "Failed to update dictionary entry")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/dictionary/{id}.
func (h *DictionaryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	entryID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entry, err := h.entryStore.GetByID(r.Context(), entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if entry.UserID != userID {
		HandleAPIError(w, r, store.ErrEntryNotFound, "")
		return
	}

	if err := h.entryStore.Delete(r.Context(), entryID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete dictionary entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
