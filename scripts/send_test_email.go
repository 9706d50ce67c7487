//go:build ignore

// Sends a sample order confirmation through the configured email provider.
//
//	go run scripts/send_test_email.go -to you@example.com
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/gaming-palace/storefront/internal/pkg/email"
	"github.com/gaming-palace/storefront/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	to := flag.String("to", "", "recipient address")
	flag.Parse()
	if *to == "" {
		log.Fatal("Usage: go run scripts/send_test_email.go -to <address>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	sample := &order.Order{
		OrderNumber: order.NewOrderNumber(time.Now()),
		Status:      order.OrderStatusPaid,
		Currency:    cfg.External.Stripe.Currency,
		TotalAmount: decimal.RequireFromString("44.98"),
		CreatedAt:   time.Now(),
		Items: []order.OrderItem{
			{Name: "Pro Gaming Headset", Quantity: 2, UnitPrice: decimal.RequireFromString("19.99")},
			{Name: "Mouse Pad", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}

	svc := email.NewService(cfg, logger.New(cfg))
	if err := svc.OrderConfirmed(context.Background(), &user.User{Email: *to, FirstName: "Test"}, sample); err != nil {
		log.Fatal("Send failed:", err)
	}

	log.Printf("Sent test confirmation to %s via %s provider", *to, cfg.External.Email.Provider)
}
