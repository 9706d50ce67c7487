// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler exposes the session's user
type AuthHandler struct {
	userService *user.Service
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser handles GET /auth/user. The local user row is created or
// refreshed from the session claims.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
		return
	}

	u, err := h.userService.Upsert(c.Request.Context(), user.Profile{
		ID:              identity.UserID,
		Email:           identity.Email,
		FirstName:       identity.FirstName,
		LastName:        identity.LastName,
		ProfileImageURL: identity.ProfileImageURL,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"data": gin.H{
			"user":    u,
			"isAdmin": identity.IsAdmin,
		},
	})
}
