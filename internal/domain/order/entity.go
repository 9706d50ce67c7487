// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	// OrderStatusPaid is the initial status of every order: orders only exist
	// once the payment processor has confirmed the charge.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusNeedsReview marks a paid order whose charged amount differs
	// from the cart snapshot it was built from.
	OrderStatusNeedsReview OrderStatus = "needs_review"
	OrderStatusFulfilled   OrderStatus = "fulfilled"
	OrderStatusCancelled   OrderStatus = "cancelled"
	OrderStatusRefunded    OrderStatus = "refunded"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order is a finalized purchase
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null;size:50" json:"orderNumber"`
	UserID          string          `gorm:"not null;size:255;index" json:"userId"`
	Status          OrderStatus     `gorm:"not null;size:30;default:'paid'" json:"status"`
	PaymentIntentID string          `gorm:"uniqueIndex;not null;size:255" json:"paymentIntentId"`
	Currency        string          `gorm:"size:3;not null;default:'usd'" json:"currency"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	AmountPaidMinor int64           `gorm:"not null" json:"amountPaidMinor"`
	CreatedAt       time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem captures one cart line at the moment of purchase. UnitPrice is
// copied from the product and never follows later price changes.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"orderId"`
	ProductID uint            `gorm:"not null;index" json:"productId"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Payment tracks a payment-collection handle issued by the payment processor
type Payment struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      string        `gorm:"not null;size:255;index" json:"userId"`
	ProviderID  string        `gorm:"uniqueIndex;not null;size:255" json:"providerId"`
	AmountMinor int64         `gorm:"not null" json:"amountMinor"`
	Currency    string        `gorm:"size:3;not null" json:"currency"`
	Status      PaymentStatus `gorm:"not null;size:20;index" json:"status"`
	OrderID     *uint         `gorm:"index" json:"orderId"`
	FailureNote string        `gorm:"type:text" json:"failureNote,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
func (Payment) TableName() string   { return "payments" }

// Business methods for Order

// NewOrderNumber generates a unique, human-friendly order number
// Format: GP-YYYYMMDD-XXXXXXXX
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("GP-%s-%s", now.UTC().Format("20060102"), suffix)
}

// LineTotal returns quantity × unit price
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal sums the captured line totals
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// IsValidStatus reports whether status is a known order status
func IsValidStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPaid, OrderStatusNeedsReview, OrderStatusFulfilled, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}
