package services

import (
	"context"
	"fmt"

	"sportshop/internal/apperror"
	"sportshop/internal/cart"
	"sportshop/internal/models"
	"sportshop/internal/repositories"
)

// CartService applies cart line changes for the owning user.
//
// Each call is a read-modify-write on the stored cart with no versioning, so
// two concurrent writes for the same user resolve as last writer wins.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Add merges quantity of productID into the cart of userID, creating the
// cart on first use.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if err := cart.ValidateLine(productID, quantity); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product with ID %s: %w", productID, apperror.ErrNotFound)
	}

	current, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := cart.AddLine(current, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Get returns the cart of userID or apperror.ErrNotFound.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	c, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cart of user %s: %w", userID, apperror.ErrNotFound)
	}
	return c, nil
}

// Remove drops productID from the cart of userID.
func (s *CartService) Remove(ctx context.Context, userID, productID string) (*models.Cart, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := cart.RemoveLine(current, productID)
	if err := s.carts.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}
