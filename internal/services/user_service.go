package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportshop/internal/apperror"
	"sportshop/internal/auth"
	"sportshop/internal/models"
	"sportshop/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ErrInvalidLogin is returned for an unknown email or a wrong password, with
// no distinction between the two.
var ErrInvalidLogin = fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthenticated)

// ErrAdminFlag is returned when a non-admin tries to change a role.
var ErrAdminFlag = fmt.Errorf("only an admin may change isAdmin: %w", apperror.ErrForbidden)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID, email string, isAdmin bool, ttl time.Duration) (string, error)
}

// UserPatch lists the user fields an update may touch. Nil fields are left alone.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// UserService handles registration, login and account management.
type UserService struct {
	users  repositories.UserRepository
	hasher *auth.Hasher
	tokens TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository, hasher *auth.Hasher, tokens TokenIssuer) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a non-admin account and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("email %s already registered: %w", email, apperror.ErrConflict)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{Name: strings.TrimSpace(name), Email: email, Password: digest}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin, 0)
	if err != nil {
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{"event": "user_registered", "user_id": user.ID}).Info("user registered")
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidLogin
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password of user %s: %w", user.ID, err)
	}
	if !ok {
		return nil, "", ErrInvalidLogin
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin, 0)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Get returns one user or apperror.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user with ID %s: %w", id, apperror.ErrNotFound)
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

// Update applies patch to user id on behalf of actor. Ownership is checked
// by the caller; the role flag is checked here.
func (s *UserService) Update(ctx context.Context, actor *models.User, id string, patch UserPatch) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsAdmin != nil && *patch.IsAdmin != user.IsAdmin {
		if actor == nil || !actor.IsAdmin {
			return nil, ErrAdminFlag
		}
		user.IsAdmin = *patch.IsAdmin
	}
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email != user.Email {
			other, err := s.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, fmt.Errorf("email %s already registered: %w", email, apperror.ErrConflict)
			}
			user.Email = email
		}
	}
	if patch.Password != nil {
		digest, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = digest
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes user id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"event": "user_deleted", "user_id": id}).Info("user deleted")
	return nil
}

// normalizeEmail drops surrounding whitespace. Case is kept: addresses are
// compared exactly as stored.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
