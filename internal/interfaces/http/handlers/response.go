// internal/interfaces/http/handlers/response.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps an error to its HTTP status. Internal failures are logged
// and hidden behind a generic message.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status >= 500 {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		}).Error("Request failed")
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(status, gin.H{
		"error": apperror.Message(err),
	})
}

// respondBindError reports a request body or query that failed validation
func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Invalid %s", name)
	}
	return uint(id), nil
}
