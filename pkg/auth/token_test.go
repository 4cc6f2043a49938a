package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Manager_IssueAndVerify(t *testing.T) {
	m := NewManager("super-secret", time.Hour)

	token, err := m.Issue("123e4567-e89b-12d3-a456-426614174000", "john@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", claims.Subject)
	assert.Equal(t, "john@example.com", claims.Email)
}

func Test_Manager_Verify_Expired(t *testing.T) {
	m := NewManager("super-secret", -time.Second)

	token, err := m.Issue("user-1", "john@example.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Manager_Verify_WrongSecret(t *testing.T) {
	token, err := NewManager("right-secret", time.Hour).Issue("user-1", "john@example.com")
	require.NoError(t, err)

	_, err = NewManager("wrong-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Manager_Verify_Malformed(t *testing.T) {
	m := NewManager("super-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
