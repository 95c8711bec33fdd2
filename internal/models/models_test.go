package models_test

import (
	"testing"

	"sportshop/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProduct_RefreshOnSale(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		salePrice float64
		want      bool
	}{
		{name: "no sale price", price: 100, salePrice: 0, want: false},
		{name: "cheaper sale price", price: 100, salePrice: 80, want: true},
		{name: "equal sale price", price: 100, salePrice: 100, want: false},
		{name: "higher sale price", price: 100, salePrice: 120, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Product{Price: tt.price, SalePrice: tt.salePrice, OnSale: !tt.want}
			p.RefreshOnSale()
			assert.Equal(t, tt.want, p.OnSale)
		})
	}
}

func TestProduct_IsDiscountedAndEffectivePrice(t *testing.T) {
	discounted := models.Product{Price: 50, Discount: 10}
	assert.True(t, discounted.IsDiscounted())
	assert.Equal(t, 50.0, discounted.EffectivePrice())

	onSale := models.Product{Price: 50, SalePrice: 40}
	assert.True(t, onSale.IsDiscounted())
	assert.Equal(t, 40.0, onSale.EffectivePrice())

	regular := models.Product{Price: 50}
	assert.False(t, regular.IsDiscounted())
	assert.Equal(t, 50.0, regular.EffectivePrice())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		assert.True(t, models.ValidStatus(s), s)
	}
	assert.False(t, models.ValidStatus("lost"))
	assert.False(t, models.ValidStatus(""))
}

func TestUser_PublicOmitsPassword(t *testing.T) {
	u := models.User{ID: "u1", Name: "An", Email: "an@example.com", Password: "digest", IsAdmin: true}
	assert.Equal(t, models.PublicUser{ID: "u1", Name: "An", Email: "an@example.com", IsAdmin: true}, u.Public())
}
