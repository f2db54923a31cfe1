package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguahub/lingua-api/internal/api/shared"
	"github.com/linguahub/lingua-api/internal/domain"
	"github.com/linguahub/lingua-api/internal/service/auth"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(
	_ context.Context,
	_ uuid.UUID,
	_ domain.Role,
) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return s.claims, s.err
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid token puts identity and role in context", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&stubJWTService{
			claims: &auth.Claims{UserID: userID, Role: domain.RoleTeacher},
		})

		var gotID uuid.UUID
		var gotRole domain.Role
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserID(r)
			require.True(t, ok)
			gotID = id

			role, ok := GetUserRole(r)
			require.True(t, ok)
			gotRole = role

			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		r.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()

		m.Authenticate(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, domain.RoleTeacher, gotRole)
	})

	t.Run("rejected requests never reach the handler", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			authHeader string
			svcErr     error
			expected   int
		}{
			{"missing header", "", nil, http.StatusUnauthorized},
			{"wrong scheme", "Basic dXNlcjpwYXNz", nil, http.StatusUnauthorized},
			{"no token after Bearer", "Bearer", nil, http.StatusUnauthorized},
			{"expired token", "Bearer expired", auth.ErrExpiredToken, http.StatusUnauthorized},
			{"invalid token", "Bearer garbage", auth.ErrInvalidToken, http.StatusUnauthorized},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				m := NewAuthMiddleware(&stubJWTService{err: tt.svcErr})
				next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					t.Error("handler must not run for a rejected request")
				})

				r := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
				if tt.authHeader != "" {
					r.Header.Set("Authorization", tt.authHeader)
				}
				rr := httptest.NewRecorder()

				m.Authenticate(next).ServeHTTP(rr, r)

				assert.Equal(t, tt.expected, rr.Code)
			})
		}
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(&stubJWTService{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		role     domain.Role
		hasRole  bool
		allowed  []domain.Role
		expected int
	}{
		{
			name:     "teacher allowed on teacher route",
			role:     domain.RoleTeacher,
			hasRole:  true,
			allowed:  []domain.Role{domain.RoleTeacher, domain.RoleAdmin},
			expected: http.StatusOK,
		},
		{
			name:     "admin allowed on teacher route",
			role:     domain.RoleAdmin,
			hasRole:  true,
			allowed:  []domain.Role{domain.RoleTeacher, domain.RoleAdmin},
			expected: http.StatusOK,
		},
		{
			name:     "student rejected on teacher route",
			role:     domain.RoleStudent,
			hasRole:  true,
			allowed:  []domain.Role{domain.RoleTeacher, domain.RoleAdmin},
			expected: http.StatusForbidden,
		},
		{
			name:     "missing role means unauthenticated",
			hasRole:  false,
			allowed:  []domain.Role{domain.RoleTeacher},
			expected: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/courses", nil)
			if tt.hasRole {
				ctx := context.WithValue(r.Context(), shared.UserRoleContextKey, tt.role)
				r = r.WithContext(ctx)
			}
			rr := httptest.NewRecorder()

			m.RequireRole(tt.allowed...)(next).ServeHTTP(rr, r)

			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}
