package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/supportdesk/helpdesk-service/internal/auth"
	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// AuthService coordinates login and logout.
type AuthService struct {
	users    repository.UserRepository
	sessions auth.SessionStore
	tokens   *auth.TokenManager
}

// AuthDependencies bundles requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions auth.SessionStore
	Tokens   *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		sessions: deps.Sessions,
		tokens:   deps.Tokens,
	}
}

// Login authenticates by username and password and opens a session. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid credentials")
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Create(ctx, sessionID, user.ID); err != nil {
		return nil, "", apperrors.MapError(err)
	}
	token, err := s.tokens.GenerateToken(user, sessionID)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}
	return user, token, nil
}

// Logout revokes the session. Revoking an unknown session is a no-op, so
// logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return apperrors.MapError(s.sessions.Delete(ctx, sessionID))
}
