package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sportshop/internal/apperror"
	"sportshop/internal/models"
)

// Rejection reasons of the gate. Each one matches apperror.ErrUnauthenticated
// or apperror.ErrForbidden/ErrValidation with errors.Is.
var (
	ErrNoCredential      = fmt.Errorf("no bearer credential: %w", apperror.ErrUnauthenticated)
	ErrInvalidCredential = fmt.Errorf("invalid credential: %w", apperror.ErrUnauthenticated)
	ErrUnknownSubject    = fmt.Errorf("token subject does not exist: %w", apperror.ErrUnauthenticated)
	ErrNotAdmin          = fmt.Errorf("admin privilege required: %w", apperror.ErrForbidden)
	ErrNotOwner          = fmt.Errorf("caller is neither owner nor admin: %w", apperror.ErrForbidden)
	ErrMissingTarget     = fmt.Errorf("target user id is missing: %w", apperror.ErrValidation)
)

// UserFinder resolves the subject of a verified token.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Verifier decodes a bearer token into claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Gate authenticates requests from their Authorization header.
type Gate struct {
	tokens Verifier
	users  UserFinder
}

// NewGate returns a Gate backed by the given verifier and user store.
func NewGate(tokens Verifier, users UserFinder) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate resolves the caller from an Authorization header value. The
// returned user is re-read from the store (so deleted users are rejected)
// and never carries the password digest.
func (g *Gate) Authenticate(ctx context.Context, authHeader string) (*models.User, error) {
	raw, ok := bearerToken(authHeader)
	if !ok {
		return nil, ErrNoCredential
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	user, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	if user == nil {
		return nil, ErrUnknownSubject
	}

	resolved := *user
	resolved.Password = ""
	return &resolved, nil
}

// RequireAdmin passes only for an authenticated administrator.
func RequireAdmin(user *models.User) error {
	if user == nil {
		return ErrNoCredential
	}
	if !user.IsAdmin {
		return ErrNotAdmin
	}
	return nil
}

// RequireSelfOrAdmin passes when user owns targetUserID or is an administrator.
// An empty target is a caller error, not an authorization failure.
func RequireSelfOrAdmin(user *models.User, targetUserID string) error {
	if user == nil {
		return ErrNoCredential
	}
	if targetUserID == "" {
		return ErrMissingTarget
	}
	if user.ID == targetUserID || user.IsAdmin {
		return nil
	}
	return ErrNotOwner
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
