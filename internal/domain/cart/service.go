// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles cart business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new cart service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// AddToCartRequest represents add to cart request. An omitted quantity
// means one.
type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity"`
}

// UpdateCartItemRequest represents update cart item request. A quantity of
// zero or less removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// Get retrieves the user's cart joined with current product data
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}

	items, err := s.ItemsTx(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	return &Cart{
		UserID: userID,
		Items:  items,
		Totals: CalculateTotals(items),
	}, nil
}

// ItemsTx loads the user's cart lines through the given handle, which may be
// a transaction.
func (s *Service) ItemsTx(tx *gorm.DB, userID string) ([]CartItem, error) {
	items := []CartItem{}
	err := tx.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return items, nil
}

// Add puts a product in the cart. When the product is already there the
// quantities are summed in a single upsert, so concurrent adds never produce
// two lines for the same product.
func (s *Service) Add(ctx context.Context, userID string, req *AddToCartRequest) (*CartItem, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return nil, apperror.Validation("Quantity must be at least 1")
	}

	db := s.db.WithContext(ctx)

	var p product.Product
	err := db.Select("id", "in_stock").First(&p, req.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if !p.InStock {
		return nil, apperror.Precondition("Product is out of stock")
	}

	item := CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  quantity,
	}

	err = db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return s.findLine(db, userID, "product_id = ?", req.ProductID)
}

// SetQuantity replaces a line's quantity. It returns a nil item when the
// quantity was zero or less and the line was removed instead.
func (s *Service) SetQuantity(ctx context.Context, userID string, itemID uint, quantity int) (*CartItem, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}
	if quantity <= 0 {
		return nil, s.Remove(ctx, userID, itemID)
	}

	db := s.db.WithContext(ctx)

	result := db.Model(&CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("Cart item not found")
	}

	return s.findLine(db, userID, "id = ?", itemID)
}

// Remove deletes one line from the user's cart
func (s *Service) Remove(ctx context.Context, userID string, itemID uint) error {
	if userID == "" {
		return apperror.Unauthenticated("User not authenticated")
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Cart item not found")
	}

	return nil
}

// Clear empties the user's cart
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperror.Unauthenticated("User not authenticated")
	}

	return s.ClearTx(s.db.WithContext(ctx), userID)
}

// ClearTx empties the user's cart through the given handle
func (s *Service) ClearTx(tx *gorm.DB, userID string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Service) findLine(db *gorm.DB, userID, cond string, arg interface{}) (*CartItem, error) {
	var item CartItem
	err := db.Preload("Product").
		Where("user_id = ?", userID).
		Where(cond, arg).
		First(&item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}

	return &item, nil
}
