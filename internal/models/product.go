package models

import "time"

// Product represents a catalog entry.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name         string    `json:"name" gorm:"type:varchar(200);not null" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Brand        string    `json:"brand" bson:"brand"`
	Category     string    `json:"category" gorm:"index" bson:"category"`
	Price        float64   `json:"price" gorm:"not null;default:0" bson:"price"`
	SalePrice    float64   `json:"salePrice" gorm:"not null;default:0" bson:"salePrice"`
	Discount     float64   `json:"discount" gorm:"not null;default:0" bson:"discount"` // percent, 0..100
	OnSale       bool      `json:"onSale" gorm:"not null;default:false" bson:"onSale"`
	CountInStock int       `json:"countInStock" gorm:"not null;default:0" bson:"countInStock"`
	Image        string    `json:"image" bson:"image"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RefreshOnSale recomputes the derived OnSale flag. It must run right before
// every persist.
func (p *Product) RefreshOnSale() {
	p.OnSale = p.SalePrice > 0 && p.SalePrice < p.Price
}

// IsDiscounted reports whether the product belongs in the sale listing.
func (p *Product) IsDiscounted() bool {
	return p.Discount > 0 || p.OnSale || (p.SalePrice > 0 && p.SalePrice < p.Price)
}

// EffectivePrice is the unit price charged at checkout.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}
