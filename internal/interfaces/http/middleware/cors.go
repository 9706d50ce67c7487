// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"time"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// Credentials are allowed so the session cookie reaches the API.
func CORS(cfg config.SecurityConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.CORSAllowedMethods,
		AllowHeaders:     cfg.CORSAllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			// A literal wildcard cannot be combined with credentials; echo the
			// caller's origin instead.
			corsConfig.AllowOriginFunc = func(string) bool { return true }
			return cors.New(corsConfig)
		}
	}

	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowWildcard = true
	return cors.New(corsConfig)
}
