// internal/interfaces/http/handlers/product.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/gaming-palace/storefront/internal/pkg/export"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
	logger         *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// GetProducts handles GET /products?category=&search=
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var filter product.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	p, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}

// CreateProduct handles POST /admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    p,
	})
}

// InitProducts handles POST /admin/init-products
func (h *ProductHandler) InitProducts(c *gin.Context) {
	inserted, err := h.productService.InitCatalog(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "Products already initialized"
	if inserted > 0 {
		message = "Products initialized successfully"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    gin.H{"inserted": inserted},
	})
}

// ExportProducts handles GET /admin/products/export
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), product.ListFilter{})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Render fully before writing headers so failures still produce JSON
	var buf bytes.Buffer
	if err := export.WriteProducts(&buf, products); err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
