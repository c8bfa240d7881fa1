package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeras-code/shopcart/internal/entity"
)

func testTokenManager(ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte("test-secret"), ttl: ttl}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testTokenManager(time.Hour)
	user := &entity.User{ID: 7, Email: "jane@example.com", Role: entity.RoleAdmin}

	token, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := testTokenManager(time.Hour)
	verifier := &TokenManager{secret: []byte("other-secret"), ttl: time.Hour}

	token, err := issuer.Issue(&entity.User{ID: 1, Email: "a@b.com", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiredRejected(t *testing.T) {
	m := testTokenManager(-time.Minute)

	token, err := m.Issue(&entity.User{ID: 1, Email: "a@b.com", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbageRejected(t *testing.T) {
	m := testTokenManager(time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
