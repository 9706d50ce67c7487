// internal/domain/product/review_dto.go
package product

import "time"

// CreateReviewRequest represents the request to create a review
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse is a review joined with the reviewer's display name
type ReviewResponse struct {
	ID         uint               `json:"id"`
	UserID     string             `json:"userId"`
	ProductID  uint               `json:"productId"`
	Rating     int                `json:"rating"`
	Comment    string             `json:"comment"`
	IsVerified bool               `json:"isVerified"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	User       ReviewUserResponse `json:"user"`
}

// ReviewUserResponse represents user info in review responses
type ReviewUserResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RatingAggregate is the arithmetic mean of all stored ratings plus their count
type RatingAggregate struct {
	Rating float64 `json:"rating"`
	Count  int64   `json:"count"`
}
