// Package cart merges requested line items into a user's cart. The functions
// are pure: they never mutate their input and return a new cart value.
package cart

import (
	"fmt"
	"math"

	"sportshop/internal/apperror"
	"sportshop/internal/models"
)

// ErrInvalidQuantity is returned for a zero or negative quantity.
var ErrInvalidQuantity = fmt.Errorf("quantity must be a positive integer: %w", apperror.ErrValidation)

// ErrMissingProduct is returned when no product id is given.
var ErrMissingProduct = fmt.Errorf("product id is required: %w", apperror.ErrValidation)

// AddLine adds quantity of productID to c. A nil c yields a new cart owned by
// ownerID. An existing line for the product has its quantity increased
// (saturating at math.MaxInt); otherwise the line is appended.
func AddLine(c *models.Cart, ownerID, productID string, quantity int) (*models.Cart, error) {
	if err := ValidateLine(productID, quantity); err != nil {
		return nil, err
	}

	if c == nil {
		return &models.Cart{
			UserID: ownerID,
			Items:  []models.CartItem{{ProductID: productID, Quantity: quantity}},
		}, nil
	}

	next := clone(c, 1)
	for i := range next.Items {
		if next.Items[i].ProductID == productID {
			next.Items[i].Quantity = saturatingAdd(next.Items[i].Quantity, quantity)
			return next, nil
		}
	}
	next.Items = append(next.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	return next, nil
}

// ValidateLine checks a requested line before any store access.
func ValidateLine(productID string, quantity int) error {
	if productID == "" {
		return ErrMissingProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// RemoveLine drops every line for productID. Removing an absent product is a
// no-op; the remaining lines keep their order.
func RemoveLine(c *models.Cart, productID string) *models.Cart {
	if c == nil {
		return nil
	}

	next := clone(c, 0)
	kept := next.Items[:0]
	for _, item := range next.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	next.Items = kept
	return next
}

func clone(c *models.Cart, extra int) *models.Cart {
	next := *c
	next.Items = make([]models.CartItem, len(c.Items), len(c.Items)+extra)
	copy(next.Items, c.Items)
	return &next
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
