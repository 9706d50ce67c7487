// internal/domain/payment/gateway.go
package payment

import "context"

// Payment intent statuses reported by the processor
const (
	StatusSucceeded             = "succeeded"
	StatusProcessing            = "processing"
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusCanceled              = "canceled"
)

// Webhook event types the storefront reacts to
const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

// MetadataUserID is the intent metadata key carrying the purchasing user
const MetadataUserID = "userId"

// Intent is the processor-neutral view of a payment-collection handle
type Intent struct {
	ID             string
	ClientSecret   string
	AmountMinor    int64
	AmountReceived int64
	Currency       string
	Status         string
	UserID         string
	FailureMessage string
}

// Succeeded reports whether the processor has collected the funds
func (i *Intent) Succeeded() bool {
	return i.Status == StatusSucceeded
}

// CreateIntentParams describes a charge to request
type CreateIntentParams struct {
	AmountMinor    int64
	Currency       string
	UserID         string
	CustomerID     string
	IdempotencyKey string
}

// CustomerParams describes a processor-side customer record
type CustomerParams struct {
	UserID string
	Email  string
	Name   string
}

// Event is a verified webhook notification
type Event struct {
	ID     string
	Type   string
	Intent *Intent
}

// Gateway is the external payment collaborator
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (*Intent, error)
	CreateCustomer(ctx context.Context, params CustomerParams) (string, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
