package handlers

import (
	"sportshop/internal/middleware"
	"sportshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's shopping cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes; all of them require authn.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authn fiber.Handler) {
	cartRoutes := router.Group("/cart", authn)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Get("/:userId", middleware.RequireSelfOrAdmin("userId"), h.HandleGetCart)
	cartRoutes.Delete("/:productId", h.HandleRemoveFromCart)
}

// AddToCartRequest represents the request body for adding a cart line.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddToCart merges a line into the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.service.Add(c.UserContext(), middleware.CurrentUser(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(cart)
}

// HandleRemoveFromCart drops a product from the caller's cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	cart, err := h.service.Remove(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product removed from cart",
		"cart":    cart,
	})
}
