package repositories

import (
	"context"
	"fmt"

	"sportshop/internal/apperror"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, apperror.ErrStore, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s with ID %s: %w", kind, id, apperror.ErrNotFound)
}
