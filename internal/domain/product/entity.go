// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry
type Product struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"not null;size:255" json:"name"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Price         decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:numeric(10,2)" json:"originalPrice"`
	Category      string           `gorm:"not null;size:100;index" json:"category"`
	ImageURL      string           `gorm:"not null;size:500" json:"imageUrl"`
	Rating        *decimal.Decimal `gorm:"type:numeric(2,1)" json:"rating"`
	ReviewCount   *int             `gorm:"default:0" json:"reviewCount"`
	InStock       bool             `gorm:"not null" json:"inStock"`
	IsHot         bool             `gorm:"not null" json:"isHot"`
	CreatedAt     time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Review is a customer rating for a product. Reviews are append-only.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"not null;size:255;index" json:"userId"`
	ProductID  uint      `gorm:"not null;index" json:"productId"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	IsVerified bool      `gorm:"default:false" json:"isVerified"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName overrides
func (Product) TableName() string { return "products" }
func (Review) TableName() string  { return "reviews" }

// Business methods for Product

// HasDiscount reports whether the original price should be shown struck through
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// GetDiscountPercentage returns the whole-percent saving against the original price
func (p *Product) GetDiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	saving := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(saving.IntPart())
}
