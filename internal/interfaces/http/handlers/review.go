// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *product.ReviewService
	logger        *logrus.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *product.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// GetProductReviews handles GET /products/:id/reviews
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	reviews, err := h.reviewService.GetProductReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reviews retrieved successfully",
		"data":    reviews,
	})
}

// GetProductRating handles GET /products/:id/rating
func (h *ReviewHandler) GetProductRating(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	aggregate, err := h.reviewService.GetAggregate(c.Request.Context(), productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating retrieved successfully",
		"data":    aggregate,
	})
}

// CreateReview handles POST /products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	productID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req product.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), userID, productID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"data":    review,
	})
}
