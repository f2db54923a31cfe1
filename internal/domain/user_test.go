package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("normalizes email and defaults role to student", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("  Anna@Example.COM ", "password123", " Anna ", " Schmidt ", "")
		require.NoError(t, err)

		assert.Equal(t, "anna@example.com", user.Email)
		assert.Equal(t, "Anna", user.FirstName)
		assert.Equal(t, RoleStudent, user.Role)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Anna Schmidt", user.FullName())
	})

	t.Run("accepts explicit teacher role", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("maria@example.com", "password123", "Maria", "Lopez", RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, RoleTeacher, user.Role)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			email    string
			password string
			first    string
			last     string
			role     Role
			expected error
		}{
			{"empty email", "", "password123", "Anna", "Schmidt", "", ErrEmptyEmail},
			{"malformed email", "not-an-email", "password123", "Anna", "Schmidt", "", ErrInvalidEmail},
			{"short password", "anna@example.com", "short", "Anna", "Schmidt", "", ErrPasswordTooShort},
			{
				"password beyond bcrypt limit",
				"anna@example.com",
				strings.Repeat("x", 73),
				"Anna",
				"Schmidt",
				"",
				ErrPasswordTooLong,
			},
			{"missing first name", "anna@example.com", "password123", "", "Schmidt", "", ErrEmptyName},
			{"unknown role", "anna@example.com", "password123", "Anna", "Schmidt", "superuser", ErrInvalidRole},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := NewUser(tt.email, tt.password, tt.first, tt.last, tt.role)
				assert.ErrorIs(t, err, tt.expected)
			})
		}
	})

	t.Run("user loaded from storage validates without a plaintext password", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("anna@example.com", "password123", "Anna", "Schmidt", "")
		require.NoError(t, err)

		user.Password = ""
		user.HashedPassword = "$2a$10$notarealbcrypthashbutlongenough"
		assert.NoError(t, user.Validate())
	})
}
