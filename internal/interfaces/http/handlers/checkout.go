// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gaming-palace/storefront/internal/domain/checkout"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CheckoutHandler handles payment-intent, confirmation and webhook endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// CreatePaymentIntent handles POST /create-payment-intent. The body may be
// empty; the charged amount always comes from the server-side cart.
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req checkout.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	resp, err := h.checkoutService.CreatePaymentIntent(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Payment intent created successfully",
		"clientSecret": resp.ClientSecret,
		"data":         resp,
	})
}

// ConfirmPayment handles POST /checkout/confirm
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req checkout.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	o, err := h.checkoutService.ConfirmPayment(c.Request.Context(), userID, req.PaymentIntentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    o,
	})
}

// StripeWebhook handles POST /webhooks/stripe
func (h *CheckoutHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	if err := h.checkoutService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// ReconcileRequest bounds which pending payments are re-checked
type ReconcileRequest struct {
	OlderThanMinutes int `json:"olderThanMinutes" binding:"omitempty,min=0"`
}

// ReconcilePayments handles POST /admin/payments/reconcile
func (h *CheckoutHandler) ReconcilePayments(c *gin.Context) {
	req := ReconcileRequest{OlderThanMinutes: 15}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	report, err := h.checkoutService.Reconcile(c.Request.Context(), time.Duration(req.OlderThanMinutes)*time.Minute)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reconciliation completed",
		"data":    report,
	})
}
