// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/shopspring/decimal"
)

// CartItem is one product line in a user's cart. The (user_id, product_id)
// pair is unique; adding the same product again merges quantities.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;size:255;uniqueIndex:idx_cart_items_user_product" json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_product;index" json:"productId"`
	Quantity  int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal returns quantity × the joined product's current price
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int             `json:"itemCount"`     // Number of unique items
	TotalQuantity int             `json:"totalQuantity"` // Sum of all quantities
	Total         decimal.Decimal `json:"total"`         // Σ quantity × price
	AmountMinor   int64           `json:"amountMinor"`   // Total in minor currency units
}

// Cart is a user's cart with totals recomputed from live product prices
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
	Totals CartTotals `json:"totals"`
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CalculateTotals sums the cart lines. Nothing is cached; callers recompute
// on every read.
func CalculateTotals(items []CartItem) CartTotals {
	totals := CartTotals{
		ItemCount: len(items),
		Total:     decimal.Zero,
	}

	for i := range items {
		totals.TotalQuantity += items[i].Quantity
		totals.Total = totals.Total.Add(items[i].LineTotal())
	}

	totals.AmountMinor = ToMinorUnits(totals.Total)
	return totals
}

// ToMinorUnits converts a decimal amount to integer cents, rounding half up
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
