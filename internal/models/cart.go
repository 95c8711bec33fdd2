package models

import "time"

// CartItem is one line of a cart.
type CartItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart is the shopping cart owned by exactly one user. Items keep insertion
// order and hold at most one line per product.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;type:varchar(36);not null" bson:"userId"`
	Items     []CartItem `json:"products" gorm:"serializer:json;type:text" bson:"products"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}
