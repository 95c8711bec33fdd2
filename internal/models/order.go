package models

import "time"

// Order statuses. New orders start as StatusPending.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// OrderProduct is a snapshot of a product at checkout time.
type OrderProduct struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"` // unit price at the time of order
}

// Order represents a placed order. Only Status changes after creation.
type Order struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID    string         `json:"userId" gorm:"index;type:varchar(36);not null" bson:"userId"`
	Products  []OrderProduct `json:"products" gorm:"serializer:json;type:text" bson:"products"`
	Amount    float64        `json:"amount" gorm:"not null" bson:"amount"`
	Address   string         `json:"address" gorm:"not null" bson:"address"`
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:pending" bson:"status"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}
