// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gaming-palace/storefront/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InvoiceHandler handles invoice-related endpoints
type InvoiceHandler struct {
	orderService *order.Service
	userService  *user.Service
	pdfService   *pdf.Service
	logger       *logrus.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderService *order.Service, userService *user.Service, pdfService *pdf.Service, logger *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: orderService,
		userService:  userService,
		pdfService:   pdfService,
		logger:       logger,
	}
}

// GenerateInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	userID, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	orderID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	o, err := h.orderService.GetForUser(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	customer := pdf.Customer{}
	if u, err := h.userService.Get(c.Request.Context(), userID); err == nil {
		customer.Name = u.GetFullName()
		customer.Email = u.Email
	}

	buf, err := h.pdfService.GenerateInvoice(o, customer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", o.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
