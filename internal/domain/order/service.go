// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles order and payment-record persistence
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// ListForUser returns a user's orders with their items, newest first
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}

	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, nil
}

// GetForUser retrieves one order. Orders owned by someone else are reported
// as not found.
func (s *Service) GetForUser(ctx context.Context, userID string, orderID uint) (*Order, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}

	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	return &order, nil
}

// UpdateStatus changes an order's status (admin only)
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, error) {
	if !IsValidStatus(status) {
		return nil, apperror.Validation("Invalid order status: %s", status)
	}

	db := s.db.WithContext(ctx)

	result := db.Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("Order not found")
	}

	var order Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	return &order, nil
}

// FindByPaymentIntentTx returns the order created for a payment intent, or
// nil when none exists yet.
func (s *Service) FindByPaymentIntentTx(tx *gorm.DB, intentID string) (*Order, error) {
	var order Order
	err := tx.Preload("Items").Where("payment_intent_id = ?", intentID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up order by payment intent: %w", err)
	}

	return &order, nil
}

// CreateTx inserts an order and its items inside the caller's transaction
func (s *Service) CreateTx(tx *gorm.DB, order *Order) error {
	if len(order.Items) == 0 {
		return apperror.Precondition("Cannot create an order without items")
	}
	if order.OrderNumber == "" {
		order.OrderNumber = NewOrderNumber(time.Now())
	}
	if order.Status == "" {
		order.Status = OrderStatusPaid
	}
	order.TotalAmount = order.ItemsTotal()

	if err := tx.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// RecordPayment stores a pending payment handle. Recording the same provider
// id twice keeps the first row.
func (s *Service) RecordPayment(ctx context.Context, payment *Payment) error {
	if payment.Status == "" {
		payment.Status = PaymentStatusPending
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_id"}},
			DoNothing: true,
		}).
		Create(payment).Error
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	return nil
}

// MarkPaymentPaidTx links a payment handle to the order it produced
func (s *Service) MarkPaymentPaidTx(tx *gorm.DB, payment *Payment, orderID uint) error {
	now := time.Now().UTC()
	payment.Status = PaymentStatusPaid
	payment.OrderID = &orderID
	payment.UpdatedAt = now

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     PaymentStatusPaid,
			"order_id":   orderID,
			"updated_at": now,
		}),
	}).Create(payment).Error
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}

	return nil
}

// MarkPaymentFailed records a failed collection attempt. Paid payments are
// never downgraded.
func (s *Service) MarkPaymentFailed(ctx context.Context, providerID, note string) error {
	err := s.db.WithContext(ctx).
		Model(&Payment{}).
		Where("provider_id = ? AND status = ?", providerID, PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       PaymentStatusFailed,
			"failure_note": note,
			"updated_at":   time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}

	return nil
}

// PendingPayments returns payment handles still pending after the cutoff
func (s *Service) PendingPayments(ctx context.Context, olderThan time.Time) ([]Payment, error) {
	var payments []Payment
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", PaymentStatusPending, olderThan).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}

	return payments, nil
}
