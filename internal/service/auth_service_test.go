package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/domain"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

func newAuthService(users *mockUserRepo, sessions *mockSessionStore) *AuthService {
	return NewAuthService(AuthDependencies{
		UserRepo: users,
		Sessions: sessions,
		Tokens:   auth.NewTokenManager("test-secret"),
	})
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	hash, err := auth.HashPassword("admin123", testBcryptCost)
	require.NoError(t, err)

	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hash, Role: domain.RoleAdmin}, nil
		},
	}
	sessions := &mockSessionStore{}
	svc := newAuthService(users, sessions)

	user, token, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEmpty(t, token)
	require.Len(t, sessions.created, 1)

	claims, err := auth.NewTokenManager("test-secret").ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, sessions.created[0], claims.SessionID)
}

func TestLoginHidesWhetherUserExists(t *testing.T) {
	hash, err := auth.HashPassword("rightpw", testBcryptCost)
	require.NoError(t, err)

	knownUser := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hash}, nil
		},
	}

	tests := []struct {
		name     string
		users    *mockUserRepo
		password string
	}{
		{name: "unknown username", users: &mockUserRepo{}, password: "whatever"},
		{name: "wrong password", users: knownUser, password: "wrongpw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(tt.users, &mockSessionStore{})
			_, _, err := svc.Login(context.Background(), "someone", tt.password)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, "UNAUTHENTICATED", domainErr.Code)
			assert.Equal(t, "invalid credentials", domainErr.Message)
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	sessions := &mockSessionStore{}
	svc := newAuthService(&mockUserRepo{}, sessions)

	require.NoError(t, svc.Logout(context.Background(), "sess-1"))
	require.NoError(t, svc.Logout(context.Background(), "sess-1"))
	assert.Equal(t, []string{"sess-1", "sess-1"}, sessions.deleted)

	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Len(t, sessions.deleted, 2)
}
