package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/linguahub/lingua-api/internal/api/middleware"
	"github.com/linguahub/lingua-api/internal/api/shared"
	"github.com/linguahub/lingua-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's UUID from the request context.
// The user ID is expected to be placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// actorFromContext builds the acting user from the identity the auth
// middleware stored in the context. The role comes from the token claims, so
// ownership checks need no extra user fetch.
func actorFromContext(r *http.Request) (*domain.User, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		return nil, false
	}
	role, ok := middleware.GetUserRole(r)
	if !ok {
		return nil, false
	}
	return &domain.User{ID: userID, Role: role}, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// requireActorAndPathUUID extracts the acting user from the context and a
// UUID from the path. It writes an error response and returns false if either
// is missing or malformed.
func requireActorAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (*domain.User, uuid.UUID, bool) {
	actor, ok := actorFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, uuid.Nil, false
	}

	return actor, pathID, true
}
