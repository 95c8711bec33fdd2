package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportshop/internal/apperror"
	"sportshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository stores each cart as one row with its lines serialized
// as JSON, so line order survives a round trip.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserID returns the cart owned by userID, or nil.
func (r *GORMCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	if err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("failed to get cart", err)
	}
	return &c, nil
}

// Save inserts a new cart or replaces the lines of an existing one. It is a
// plain last-writer-wins write.
func (r *GORMCartRepository) Save(ctx context.Context, c *models.Cart) error {
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
		if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
			c.ID = ""
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("user %s already has a cart: %w", c.UserID, apperror.ErrConflict)
			}
			return storeErr("failed to create cart", err)
		}
		return nil
	}

	c.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(c).Select("Items", "UpdatedAt").Updates(c)
	if res.Error != nil {
		return storeErr("failed to update cart", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("cart", c.ID)
	}
	return nil
}
