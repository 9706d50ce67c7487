// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/gaming-palace/storefront/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the authenticated caller
type Identity struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	IsAdmin         bool
}

// Authenticator resolves the caller of a request. Implementations return an
// error when the request carries no valid session.
type Authenticator interface {
	Authenticate(r *http.Request) (*Identity, error)
}

// JWTAuthenticator trusts session tokens signed by the identity provider,
// read from the Authorization header or the session cookie.
type JWTAuthenticator struct {
	manager    *auth.JWTManager
	cookieName string
}

// NewJWTAuthenticator creates a JWT-backed authenticator
func NewJWTAuthenticator(cfg config.JWTConfig) *JWTAuthenticator {
	return &JWTAuthenticator{
		manager:    auth.NewJWTManager(cfg),
		cookieName: cfg.CookieName,
	}
}

// Authenticate validates the request's session token
func (a *JWTAuthenticator) Authenticate(r *http.Request) (*Identity, error) {
	token := auth.ExtractTokenFromHeader(r.Header.Get("Authorization"))
	if token == "" && a.cookieName != "" {
		if cookie, err := r.Cookie(a.cookieName); err == nil {
			token = cookie.Value
		}
	}

	claims, err := a.manager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID:          claims.UserID(),
		Email:           claims.Email,
		FirstName:       claims.FirstName,
		LastName:        claims.LastName,
		ProfileImageURL: claims.ProfileImageURL,
		IsAdmin:         claims.IsAdmin,
	}, nil
}

// AuthMiddleware requires an authenticated session
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authn.Authenticate(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminMiddleware ensures the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		if !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			return
		}

		c.Next()
	}
}

// GetIdentity returns the identity attached by the auth middleware
func GetIdentity(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok && identity != nil
}

// CurrentUser returns the authenticated user id or an Unauthenticated error
func CurrentUser(c *gin.Context) (string, error) {
	identity, ok := GetIdentity(c)
	if !ok || identity.UserID == "" {
		return "", apperror.Unauthenticated("Unauthorized")
	}
	return identity.UserID, nil
}
