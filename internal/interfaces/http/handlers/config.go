// internal/interfaces/http/handlers/config.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClientConfig is the public configuration the storefront client loads at
// startup. It must never carry secrets.
type ClientConfig struct {
	StoreName            string `json:"storeName"`
	StripePublishableKey string `json:"stripePublishableKey"`
	Currency             string `json:"currency"`
	PaymentsEnabled      bool   `json:"paymentsEnabled"`
}

// ConfigHandler serves the public client configuration
type ConfigHandler struct {
	config ClientConfig
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg ClientConfig) *ConfigHandler {
	return &ConfigHandler{config: cfg}
}

// GetConfig handles GET /config
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.config,
	})
}
