package handlers

import (
	"fmt"

	"sportshop/internal/middleware"
	"sportshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes; all of them require authn.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authn fiber.Handler) {
	orderRoutes := router.Group("/orders", authn)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my-orders", h.HandleGetMyOrders)
	orderRoutes.Get("/user/:userId", middleware.RequireSelfOrAdmin("userId"), h.HandleGetUserOrders)
	orderRoutes.Get("/", middleware.RequireAdmin(), h.HandleGetOrders)
	orderRoutes.Put("/:id", middleware.RequireAdmin(), h.HandleUpdateOrderStatus)
	orderRoutes.Delete("/:id", middleware.RequireAdmin(), h.HandleDeleteOrder)
}

// OrderLineRequest is one product of a new order.
type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest represents the request body of a new order. A client
// supplied amount is not part of it; the total is computed server side.
type CreateOrderRequest struct {
	Products []OrderLineRequest `json:"products" validate:"required,min=1,dive"`
	Address  string             `json:"address" validate:"required"`
}

// HandleCreateOrder places an order for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	lines := make([]services.OrderLine, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, services.OrderLine{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	order, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c).ID, lines, req.Address)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListByUser(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// UpdateOrderStatusRequest represents the request body of a status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Order %s deleted successfully", id)})
}
