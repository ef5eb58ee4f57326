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

const testBcryptCost = 4

func TestUserCreateHashesPassword(t *testing.T) {
	var created *domain.User
	users := &mockUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	svc := NewUserService(users, testBcryptCost)

	_, err := svc.Create(context.Background(), UserCreateInput{
		Username: "newagent",
		Email:    "agent@example.com",
		Password: "secret123",
		Role:     domain.RoleAgent,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, auth.ComparePassword(created.PasswordHash, "secret123"))
}

func TestUserCreateRejectsInvalidRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, testBcryptCost)

	_, err := svc.Create(context.Background(), UserCreateInput{
		Username: "x",
		Email:    "x@example.com",
		Password: "pw",
		Role:     domain.Role("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUserCreateRejectsDuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 9, Username: username}, nil
		},
	}
	svc := NewUserService(users, testBcryptCost)

	_, err := svc.Create(context.Background(), UserCreateInput{
		Username: "taken",
		Email:    "new@example.com",
		Password: "pw",
		Role:     domain.RoleCustomer,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestUserUpdateAppliesOnlyProvidedFields(t *testing.T) {
	stored := &domain.User{ID: 5, Username: "old", Email: "old@example.com", Role: domain.RoleCustomer}
	var updated *domain.User
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			copy := *stored
			return &copy, nil
		},
		updateFn: func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(users, testBcryptCost)

	email := "new@example.com"
	_, err := svc.Update(context.Background(), 5, UserUpdateInput{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "old", updated.Username)
	assert.Equal(t, domain.RoleCustomer, updated.Role)
}

func TestUserUpdateAllowsKeepingOwnUsername(t *testing.T) {
	stored := &domain.User{ID: 5, Username: "same", Email: "same@example.com", Role: domain.RoleAgent}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			copy := *stored
			return &copy, nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return stored, nil
		},
	}
	svc := NewUserService(users, testBcryptCost)

	username := "same"
	_, err := svc.Update(context.Background(), 5, UserUpdateInput{Username: &username})
	assert.NoError(t, err)
}

func TestUserDeleteForbidsSelfDeletion(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, testBcryptCost)

	err := svc.Delete(context.Background(), admin(3), 3)
	require.Error(t, err)
	assert.Equal(t, "SELF_DELETION_FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestUserDeleteOtherAccount(t *testing.T) {
	var deleted int64
	users := &mockUserRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	svc := NewUserService(users, testBcryptCost)

	require.NoError(t, svc.Delete(context.Background(), admin(3), 7))
	assert.Equal(t, int64(7), deleted)
}
