package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"sportshop/internal/apperror"
	"sportshop/internal/models"
	"sportshop/internal/repositories"
	"sportshop/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event rabbitmq.OrderEvent) error
}

// OrderLine is one requested product of a new order.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		events:      events,
	}
}

// Create places an order for userID. Every product must exist and have
// enough stock; nothing is reserved. The amount is computed from the unit
// prices at order time.
func (s *OrderService) Create(ctx context.Context, userID string, lines []OrderLine, address string) (*models.Order, error) {
	address = strings.TrimSpace(address)
	if err := validateOrder(lines, address); err != nil {
		return nil, err
	}

	requested := map[string]int{}
	for _, line := range lines {
		requested[line.ProductID] += line.Quantity
	}

	products := make(map[string]*models.Product, len(requested))
	for id, qty := range requested {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("product %s does not exist: %w", id, apperror.ErrValidation)
		}
		if product.CountInStock < qty {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d): %w",
				product.Name, qty, product.CountInStock, apperror.ErrValidation)
		}
		products[id] = product
	}

	var amount float64
	snapshot := make([]models.OrderProduct, 0, len(lines))
	for _, line := range lines {
		product := products[line.ProductID]
		price := product.EffectivePrice()
		snapshot = append(snapshot, models.OrderProduct{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     price,
		})
		amount += price * float64(line.Quantity)
	}

	order := &models.Order{
		UserID:   userID,
		Products: snapshot,
		Amount:   math.Round(amount*100) / 100,
		Address:  address,
		Status:   models.StatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"event": "order_created", "order_id": order.ID, "user_id": userID}).Info("order created")
	s.publish(ctx, rabbitmq.EventOrderCreated, order)
	return order, nil
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// ListByUser returns the orders of userID, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

// UpdateStatus moves order id to status and returns the updated order.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, apperror.FieldErrors{"status": fmt.Sprintf("invalid order status: %s", status)}
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperror.ErrNotFound)
	}

	s.publish(ctx, rabbitmq.EventOrderStatusUpdated, order)
	return order, nil
}

// Delete removes order id.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}

// publish never fails the caller; broker problems are only logged.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	log := logrus.WithFields(logrus.Fields{"event_type": eventType, "order_id": order.ID})
	if s.events == nil {
		log.Debug("event publisher not configured, skipping order event")
		return
	}

	err := s.events.PublishOrderEvent(ctx, rabbitmq.OrderEvent{
		Type:    eventType,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Amount:  order.Amount,
	})
	if err != nil {
		log.WithError(err).Warn("failed to publish order event")
	}
}

func validateOrder(lines []OrderLine, address string) error {
	errs := apperror.FieldErrors{}
	if len(lines) == 0 {
		errs["products"] = "at least one product is required"
	}
	for i, line := range lines {
		if line.ProductID == "" {
			errs[fmt.Sprintf("products[%d].productId", i)] = "is required"
		}
		if line.Quantity <= 0 {
			errs[fmt.Sprintf("products[%d].quantity", i)] = "must be a positive integer"
		}
	}
	if address == "" {
		errs["address"] = "is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
