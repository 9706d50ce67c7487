// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gaming-palace/storefront/internal/domain/cart"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CartHandler handles cart endpoints. Every route requires a session.
type CartHandler struct {
	cartService *cart.Service
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	userCart, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    userCart,
	})
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    item,
	})
}

// UpdateCartItem handles PUT /cart/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	itemID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req cart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.cartService.SetQuantity(c.Request.Context(), userID, itemID, *req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if item == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Item removed from cart",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    item,
	})
}

// RemoveFromCart handles DELETE /cart/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	itemID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
