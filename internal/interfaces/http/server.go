// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/domain/cart"
	"github.com/gaming-palace/storefront/internal/domain/checkout"
	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/payment"
	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/gaming-palace/storefront/internal/interfaces/http/handlers"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gaming-palace/storefront/internal/interfaces/http/routes"
	"github.com/gaming-palace/storefront/internal/pkg/email"
	"github.com/gaming-palace/storefront/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	logger        *logrus.Logger
	db            *gorm.DB
	redisClient   *redis.Client
	gateway       payment.Gateway
	authenticator middleware.Authenticator
	engine        *gin.Engine
	httpServer    *http.Server
	startedAt     time.Time
}

// Option customizes a Server
type Option func(*Server)

// WithRedis enables Redis-backed rate limiting and health checks
func WithRedis(client *redis.Client) Option {
	return func(s *Server) { s.redisClient = client }
}

// WithGateway sets the payment gateway; without one payment endpoints report
// an external service failure
func WithGateway(gateway payment.Gateway) Option {
	return func(s *Server) { s.gateway = gateway }
}

// WithAuthenticator replaces the JWT session authenticator
func WithAuthenticator(authn middleware.Authenticator) Option {
	return func(s *Server) { s.authenticator = authn }
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *logrus.Logger, db *gorm.DB, opts ...Option) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authenticator == nil {
		s.authenticator = middleware.NewJWTAuthenticator(cfg.JWT)
	}
	return s
}

// Router builds the gin engine on first use
func (s *Server) Router() *gin.Engine {
	if s.engine != nil {
		return s.engine
	}

	s.engine = gin.New()
	if err := s.engine.SetTrustedProxies(s.config.Security.TrustedProxies); err != nil {
		s.logger.WithError(err).Warn("Invalid trusted proxy list")
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s.engine
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.Router(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"payments": s.gateway != nil,
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger(s.logger))
	s.engine.Use(middleware.CORS(s.config.Security))
	s.engine.Use(middleware.SecurityHeaders(s.config.IsProduction()))

	if s.redisClient != nil {
		s.engine.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.redisClient, s.logger))
	}

	s.engine.Use(middleware.RequestSizeLimit(s.config.Server.MaxBodyBytes))
	s.engine.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes wires services into handlers and registers them
func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthCheck)
	s.engine.GET("/ready", s.readinessCheck)

	productService := product.NewService(s.db)
	reviewService := product.NewReviewService(s.db)
	cartService := cart.NewService(s.db)
	orderService := order.NewService(s.db)
	userService := user.NewService(s.db)

	checkoutService := checkout.NewService(checkout.Deps{
		DB:       s.db,
		Carts:    cartService,
		Orders:   orderService,
		Users:    userService,
		Gateway:  s.gateway,
		Notifier: email.NewService(s.config, s.logger),
		Currency: s.config.External.Stripe.Currency,
		Logger:   s.logger,
	})

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(userService, s.logger),
		Product:  handlers.NewProductHandler(productService, s.logger),
		Review:   handlers.NewReviewHandler(reviewService, s.logger),
		Cart:     handlers.NewCartHandler(cartService, s.logger),
		Order:    handlers.NewOrderHandler(orderService, s.logger),
		Invoice:  handlers.NewInvoiceHandler(orderService, userService, pdf.NewService(s.config), s.logger),
		Checkout: handlers.NewCheckoutHandler(checkoutService, s.logger),
		Config:   handlers.NewConfigHandler(handlers.ClientConfig{
			StoreName:            s.config.App.Name,
			StripePublishableKey: s.config.External.Stripe.PublishableKey,
			Currency:             s.config.External.Stripe.Currency,
			PaymentsEnabled:      s.gateway != nil,
		}),
	}

	routes.SetupRoutes(s.engine.Group("/api"), h, s.authenticator)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
		return
	}

	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}
