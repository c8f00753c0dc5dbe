package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewManager("secret", 0)

	token, err := m.IssueToken("mluukkai", "refactoring", "000000000000000000000001")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "mluukkai", claims.Username)
	assert.Equal(t, "refactoring", claims.FavoriteGenre)
	assert.Equal(t, "000000000000000000000001", claims.ID)
	assert.Nil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("one", 0).IssueToken("a", "", "x")
	require.NoError(t, err)

	_, err = NewManager("two", 0).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", 0).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiry(t *testing.T) {
	m := NewManager("secret", time.Hour)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.IssueToken("a", "", "x")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
