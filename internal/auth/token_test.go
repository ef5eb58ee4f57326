package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-secret")
	user := &domain.User{ID: 42, Role: domain.RoleAgent}

	token, err := tm.GenerateToken(user, "sess-abc")
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleAgent, claims.Role)
	assert.Equal(t, "sess-abc", claims.SessionID)
	assert.Equal(t, "sess-abc", claims.ID)
	assert.Nil(t, claims.ExpiresAt, "tokens carry no expiry; revocation happens via the session registry")
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").GenerateToken(&domain.User{ID: 1, Role: domain.RoleAdmin}, "sess")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret").ParseToken("not.a.token")
	assert.Error(t, err)
}
