package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/CartoboT/internal/errs"
)

func TestNewUser(t *testing.T) {
	t.Run("derives display name from long external ID", func(t *testing.T) {
		u, err := NewUser("123456789012")
		require.NoError(t, err)
		assert.Equal(t, "User 12345678", u.DisplayName)
	})

	t.Run("short external ID used as-is", func(t *testing.T) {
		u, err := NewUser("bob")
		require.NoError(t, err)
		assert.Equal(t, "User bob", u.DisplayName)
	})

	t.Run("multi-byte external ID truncates on characters", func(t *testing.T) {
		u, err := NewUser("яяяяяя")
		require.NoError(t, err)
		assert.Equal(t, "User яяяяяя", u.DisplayName)

		u, err = NewUser("яяяяяяяяяя")
		require.NoError(t, err)
		assert.Equal(t, "User яяяяяяяя", u.DisplayName)
	})

	t.Run("empty external ID rejected", func(t *testing.T) {
		_, err := NewUser("  ")
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "external_id", verr.Field)
	})
}

func TestUserEmailValidation(t *testing.T) {
	u, err := NewUser("user-1")
	require.NoError(t, err)

	u.Email = "not-an-email"
	var verr *errs.ValidationError
	require.ErrorAs(t, u.Validate(), &verr)
	assert.Equal(t, "email", verr.Field)

	u.Email = "bob@example.com"
	assert.NoError(t, u.Validate())

	u.Email = ""
	assert.NoError(t, u.Validate())
}
