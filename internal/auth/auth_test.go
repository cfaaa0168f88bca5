package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank_backend/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", MaxPasswordLength)))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", MaxPasswordLength+1)), ErrPasswordTooLong)
}

func TestCheckPasswordHash_Malformed(t *testing.T) {
	assert.False(t, CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
}

func TestTokenManager_GenerateAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, exp, err := m.GenerateToken("user-1", models.UserRoleHospital)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleHospital, claims.Role)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("a", time.Hour).GenerateToken("u", models.UserRoleDonor)
	require.NoError(t, err)

	_, err = NewTokenManager("b", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.GenerateToken("u", models.UserRoleDonor)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
