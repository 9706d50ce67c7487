// internal/domain/payment/stripe.go
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// ErrNotConfigured is returned when no Stripe secret key is set
var ErrNotConfigured = errors.New("payment processor is not configured")

// StripeGateway talks to the Stripe API
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	logger        *logrus.Logger
}

// NewStripeGateway creates a Stripe-backed gateway
func NewStripeGateway(cfg config.StripeConfig, logger *logrus.Logger) *StripeGateway {
	backends := stripe.NewBackends(&http.Client{Timeout: cfg.RequestTimeout})

	return &StripeGateway{
		api:           client.New(cfg.SecretKey, backends),
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
}

// CreatePaymentIntent requests a new payment intent for the given amount
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, p CreateIntentParams) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.AmountMinor),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserID, p.UserID)
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"payment_intent": pi.ID,
		"amount":         pi.Amount,
		"currency":       pi.Currency,
	}).Info("Payment intent created")

	return toIntent(pi), nil
}

// GetPaymentIntent fetches the current state of an intent
func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: get payment intent %s: %w", id, err)
	}

	return toIntent(pi), nil
}

// CreateCustomer registers a customer and returns its Stripe id
func (g *StripeGateway) CreateCustomer(ctx context.Context, p CustomerParams) (string, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if p.Email != "" {
		params.Email = stripe.String(p.Email)
	}
	if p.Name != "" {
		params.Name = stripe.String(p.Name)
	}
	params.AddMetadata(MetadataUserID, p.UserID)

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create customer: %w", err)
	}

	return customer.ID, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
// Events that do not carry a payment intent are returned with a nil Intent.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if g.webhookSecret == "" {
		return nil, ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("stripe: verify webhook: %w", err)
	}

	out := &Event{ID: event.ID, Type: string(event.Type)}

	switch out.Type {
	case EventIntentSucceeded, EventIntentFailed:
		if event.Data == nil {
			return out, nil
		}
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("stripe: decode payment intent: %w", err)
		}
		out.Intent = toIntent(&pi)
	}

	return out, nil
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	intent := &Intent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		AmountMinor:    pi.Amount,
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
		Status:         string(pi.Status),
	}
	if pi.Metadata != nil {
		intent.UserID = pi.Metadata[MetadataUserID]
	}
	if pi.LastPaymentError != nil {
		intent.FailureMessage = pi.LastPaymentError.Msg
	}
	return intent
}
