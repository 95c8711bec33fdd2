package repositories

import (
	"context"

	"sportshop/internal/models"
)

// CartRepository defines the interface for cart data access. A user owns at
// most one cart.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	// Save inserts the cart when it has no ID yet, otherwise replaces its lines.
	Save(ctx context.Context, cart *models.Cart) error
}
