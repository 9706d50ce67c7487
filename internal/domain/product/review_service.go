// internal/domain/product/review_service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"gorm.io/gorm"
)

// ReviewService handles review business logic
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		db: db,
	}
}

// AddReview appends a review. A user may review the same product more than
// once; every call stores a new row.
func (s *ReviewService) AddReview(ctx context.Context, userID string, productID uint, req *CreateReviewRequest) (*Review, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.Validation("Rating must be between 1 and 5")
	}

	db := s.db.WithContext(ctx)

	// Verify product exists
	var count int64
	if err := db.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if count == 0 {
		return nil, apperror.NotFound("Product not found")
	}

	// A review is verified when the user has a paid order containing the product
	var purchased int64
	err := db.Raw(`
		SELECT COUNT(1) FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		WHERE o.user_id = ? AND oi.product_id = ? AND o.status IN ('paid', 'needs_review', 'fulfilled')
	`, userID, productID).Scan(&purchased).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase history: %w", err)
	}

	review := Review{
		UserID:     userID,
		ProductID:  productID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		IsVerified: purchased > 0,
	}

	if err := db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &review, nil
}

// GetProductReviews returns reviews for a product, newest first
func (s *ReviewService) GetProductReviews(ctx context.Context, productID uint) ([]ReviewResponse, error) {
	var rows []struct {
		ID         uint
		UserID     string
		ProductID  uint
		Rating     int
		Comment    string
		IsVerified bool
		CreatedAt  time.Time
		UpdatedAt  time.Time
		FirstName  *string
		LastName   *string
	}

	err := s.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.user_id, reviews.product_id, reviews.rating, reviews.comment, "+
			"reviews.is_verified, reviews.created_at, reviews.updated_at, users.first_name, users.last_name").
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}

	reviews := make([]ReviewResponse, len(rows))
	for i, row := range rows {
		reviews[i] = ReviewResponse{
			ID:         row.ID,
			UserID:     row.UserID,
			ProductID:  row.ProductID,
			Rating:     row.Rating,
			Comment:    row.Comment,
			IsVerified: row.IsVerified,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
		if row.FirstName != nil {
			reviews[i].User.FirstName = *row.FirstName
		}
		if row.LastName != nil {
			reviews[i].User.LastName = *row.LastName
		}
	}

	return reviews, nil
}

// GetAggregate averages every stored rating for the product
func (s *ReviewService) GetAggregate(ctx context.Context, productID uint) (*RatingAggregate, error) {
	var result struct {
		Rating *float64
		Count  int64
	}

	err := s.db.WithContext(ctx).
		Model(&Review{}).
		Select("AVG(rating) AS rating, COUNT(id) AS count").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	aggregate := &RatingAggregate{Count: result.Count}
	if result.Rating != nil {
		aggregate.Rating = *result.Rating
	}

	return aggregate, nil
}
