// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gaming-palace/storefront/internal/interfaces/http/handlers"
	"github.com/gaming-palace/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Review   *handlers.ReviewHandler
	Cart     *handlers.CartHandler
	Order    *handlers.OrderHandler
	Invoice  *handlers.InvoiceHandler
	Checkout *handlers.CheckoutHandler
	Config   *handlers.ConfigHandler
}

// SetupRoutes registers all API routes on the group
func SetupRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	rg.GET("/config", h.Config.GetConfig)
	SetupAuthRoutes(rg, h, authn)
	SetupProductRoutes(rg, h, authn)
	SetupCartRoutes(rg, h, authn)
	SetupOrderRoutes(rg, h, authn)
	SetupCheckoutRoutes(rg, h, authn)
	SetupWebhookRoutes(rg, h)
	SetupAdminRoutes(rg, h, authn)
}

// SetupAuthRoutes sets up session related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	auth := rg.Group("/auth")
	auth.Use(middleware.AuthMiddleware(authn))
	{
		auth.GET("/user", h.Auth.GetCurrentUser)
	}
}

// SetupProductRoutes sets up catalog and review routes
func SetupProductRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/:id", h.Product.GetProduct)
		products.GET("/:id/reviews", h.Review.GetProductReviews)
		products.GET("/:id/rating", h.Review.GetProductRating)
		products.POST("/:id/reviews", middleware.AuthMiddleware(authn), h.Review.CreateReview)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(authn))
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("", h.Cart.AddToCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.PUT("/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/:id", h.Cart.RemoveFromCart)
	}
}

// SetupOrderRoutes sets up order routes
func SetupOrderRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(authn))
	{
		orders.GET("", h.Order.GetOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/invoice", h.Invoice.GenerateInvoice)
	}
}

// SetupCheckoutRoutes sets up payment routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	requireAuth := middleware.AuthMiddleware(authn)

	rg.POST("/create-payment-intent", requireAuth, h.Checkout.CreatePaymentIntent)
	rg.POST("/payment-intent", requireAuth, h.Checkout.CreatePaymentIntent)
	rg.POST("/checkout/confirm", requireAuth, h.Checkout.ConfirmPayment)
}

// SetupWebhookRoutes sets up processor callbacks. They are authenticated by
// signature, not by session.
func SetupWebhookRoutes(rg *gin.RouterGroup, h Handlers) {
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/stripe", h.Checkout.StripeWebhook)
	}
}

// SetupAdminRoutes sets up admin routes
func SetupAdminRoutes(rg *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authn), middleware.AdminMiddleware())
	{
		admin.POST("/init-products", h.Product.InitProducts)
		admin.POST("/products", h.Product.CreateProduct)
		admin.GET("/products/export", h.Product.ExportProducts)
		admin.PUT("/orders/:id/status", h.Order.UpdateOrderStatus)
		admin.POST("/payments/reconcile", h.Checkout.ReconcilePayments)
	}
}
