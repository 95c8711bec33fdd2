package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"sportshop/internal/apperror"
	"sportshop/internal/auth"
	"sportshop/internal/models"
	"sportshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*services.UserService, *MockUserRepository, *auth.Hasher, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test_jwt_secret")
	require.NoError(t, err)
	hasher := auth.NewHasher(bcrypt.MinCost)
	repo := new(MockUserRepository)
	return services.NewUserService(repo, hasher, tokens), repo, hasher, tokens
}

func TestUserService_Register(t *testing.T) {
	service, repo, hasher, tokens := newUserService(t)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "Lan@Example.com").Return(nil, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-1"
	}).Return(nil).Once()

	user, token, err := service.Register(ctx, "Lan", " Lan@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Lan@Example.com", user.Email, "trimmed, case kept")
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "password123", user.Password)

	ok, err := hasher.Verify("password123", user.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Lan@Example.com", claims.Email)
	repo.AssertExpectations(t)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	service, repo, _, _ := newUserService(t)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "lan@example.com").Return(&models.User{ID: "user-1"}, nil).Once()

	_, _, err := service.Register(ctx, "Lan", "lan@example.com", "password123")
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	service, repo, hasher, tokens := newUserService(t)
	ctx := context.Background()

	digest, err := hasher.Hash("password123")
	require.NoError(t, err)
	stored := &models.User{ID: "admin-1", Email: "admin@example.com", Password: digest, IsAdmin: true}
	repo.On("GetByEmail", ctx, "admin@example.com").Return(stored, nil)
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	user, token, err := service.Login(ctx, "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)

	_, _, wrongPassword := service.Login(ctx, "admin@example.com", "nope")
	_, _, unknownEmail := service.Login(ctx, "ghost@example.com", "password123")
	assert.True(t, errors.Is(wrongPassword, services.ErrInvalidLogin))
	assert.True(t, errors.Is(unknownEmail, services.ErrInvalidLogin))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.True(t, errors.Is(wrongPassword, apperror.ErrUnauthenticated))
}

func TestUserService_LoginStoreFailure(t *testing.T) {
	service, repo, _, _ := newUserService(t)

	repo.On("GetByEmail", mock.Anything, "lan@example.com").Return(nil, fmt.Errorf("failed to get user: %w", apperror.ErrStore)).Once()

	_, _, err := service.Login(context.Background(), "lan@example.com", "password123")
	assert.True(t, errors.Is(err, apperror.ErrStore))
	assert.False(t, errors.Is(err, apperror.ErrUnauthenticated))
}

func TestUserService_Get(t *testing.T) {
	service, repo, _, _ := newUserService(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

	user, err := service.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = service.Get(ctx, "missing")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUserService_UpdateOwnProfile(t *testing.T) {
	service, repo, hasher, _ := newUserService(t)
	ctx := context.Background()

	owner := &models.User{ID: "user-1", Name: "Lan", Email: "lan@example.com", Password: "old"}
	repo.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Name: "Lan", Email: "lan@example.com", Password: "old"}, nil).Once()
	repo.On("GetByEmail", ctx, "Lan.Tran@example.com").Return(nil, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := service.Update(ctx, owner, "user-1", services.UserPatch{
		Name:     ptr("Lan Tran"),
		Email:    ptr("Lan.Tran@example.com"),
		Password: ptr("newpassword"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lan Tran", updated.Name)
	assert.Equal(t, "Lan.Tran@example.com", updated.Email)
	ok, err := hasher.Verify("newpassword", updated.Password)
	require.NoError(t, err)
	assert.True(t, ok)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateAdminFlag(t *testing.T) {
	service, repo, _, _ := newUserService(t)
	ctx := context.Background()

	owner := &models.User{ID: "user-1"}
	admin := &models.User{ID: "admin-1", IsAdmin: true}

	// A regular user cannot promote themselves.
	repo.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	_, err := service.Update(ctx, owner, "user-1", services.UserPatch{IsAdmin: ptr(true)})
	assert.True(t, errors.Is(err, services.ErrAdminFlag))
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// Sending the unchanged value is harmless.
	repo.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()
	_, err = service.Update(ctx, owner, "user-1", services.UserPatch{IsAdmin: ptr(false)})
	assert.NoError(t, err)

	// An admin can promote.
	repo.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1"}, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool { return u.IsAdmin })).Return(nil).Once()
	updated, err := service.Update(ctx, admin, "user-1", services.UserPatch{IsAdmin: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateEmailTaken(t *testing.T) {
	service, repo, _, _ := newUserService(t)
	ctx := context.Background()

	owner := &models.User{ID: "user-1", Email: "lan@example.com"}
	repo.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Email: "lan@example.com"}, nil).Once()
	repo.On("GetByEmail", ctx, "binh@example.com").Return(&models.User{ID: "user-2"}, nil).Once()

	_, err := service.Update(ctx, owner, "user-1", services.UserPatch{Email: ptr("binh@example.com")})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Delete(t *testing.T) {
	service, repo, _, _ := newUserService(t)
	ctx := context.Background()

	repo.On("Delete", ctx, "user-1").Return(nil).Once()
	repo.On("Delete", ctx, "missing").Return(fmt.Errorf("user with ID missing: %w", apperror.ErrNotFound)).Once()

	assert.NoError(t, service.Delete(ctx, "user-1"))
	assert.True(t, errors.Is(service.Delete(ctx, "missing"), apperror.ErrNotFound))
	repo.AssertExpectations(t)
}
