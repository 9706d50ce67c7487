// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gaming-palace/storefront/internal/domain/cart"
	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/payment"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier is told about orders after they are committed
type Notifier interface {
	OrderConfirmed(ctx context.Context, u *user.User, o *order.Order) error
}

// Deps groups the collaborators of the checkout flow. Gateway may be nil when
// payments are not configured; Notifier may be nil.
type Deps struct {
	DB       *gorm.DB
	Carts    *cart.Service
	Orders   *order.Service
	Users    *user.Service
	Gateway  payment.Gateway
	Notifier Notifier
	Currency string
	Logger   *logrus.Logger
}

// Service sequences cart, payment and order stores
type Service struct {
	db       *gorm.DB
	carts    *cart.Service
	orders   *order.Service
	users    *user.Service
	gateway  payment.Gateway
	notifier Notifier
	currency string
	logger   *logrus.Logger
}

// NewService creates a new checkout service
func NewService(d Deps) *Service {
	return &Service{
		db:       d.DB,
		carts:    d.Carts,
		orders:   d.Orders,
		users:    d.Users,
		gateway:  d.Gateway,
		notifier: d.Notifier,
		currency: d.Currency,
		logger:   d.Logger,
	}
}

// PaymentIntentRequest is the body of a payment-intent request. Amount is
// optional; when present it must equal the server-side cart total.
type PaymentIntentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// PaymentIntentResponse carries the handle the client confirms against
type PaymentIntentResponse struct {
	ClientSecret    string          `json:"clientSecret"`
	PaymentIntentID string          `json:"paymentIntentId"`
	Amount          decimal.Decimal `json:"amount"`
	AmountMinor     int64           `json:"amountMinor"`
	Currency        string          `json:"currency"`
}

// ConfirmRequest is the body of a client-side confirmation
type ConfirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// ReconcileReport summarizes a reconciliation pass
type ReconcileReport struct {
	Checked      int `json:"checked"`
	Finalized    int `json:"finalized"`
	Failed       int `json:"failed"`
	StillPending int `json:"stillPending"`
	Errors       int `json:"errors"`
}

// CreatePaymentIntent prices the current cart and asks the processor for a
// payment handle. The cart is not modified.
func (s *Service) CreatePaymentIntent(ctx context.Context, userID string, req *PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, apperror.Precondition("Cart is empty")
	}
	if !c.Totals.Total.IsPositive() {
		return nil, apperror.Precondition("Cart total must be greater than 0")
	}

	if req != nil && req.Amount != nil && !req.Amount.Round(2).Equal(c.Totals.Total) {
		return nil, apperror.Validation("Amount %s does not match cart total %s",
			req.Amount.StringFixed(2), c.Totals.Total.StringFixed(2))
	}

	if s.gateway == nil {
		return nil, apperror.ExternalService(payment.ErrNotConfigured, "Payments are not available")
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, payment.CreateIntentParams{
		AmountMinor: c.Totals.AmountMinor,
		Currency:    s.currency,
		UserID:         userID,
		CustomerID:     s.ensureCustomer(ctx, userID),
		IdempotencyKey: idempotencyKey(userID, s.currency, c),
	})
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to create payment intent")
		return nil, apperror.ExternalService(err, "Failed to create payment intent")
	}

	// The pending row only feeds reconciliation; confirmation upserts it anyway.
	if err := s.orders.RecordPayment(ctx, &order.Payment{
		UserID:      userID,
		ProviderID:  intent.ID,
		AmountMinor: intent.AmountMinor,
		Currency:    s.currency,
	}); err != nil {
		s.logger.WithError(err).WithField("payment_intent", intent.ID).Warn("Failed to record pending payment")
	}

	return &PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          c.Totals.Total,
		AmountMinor:     c.Totals.AmountMinor,
		Currency:        s.currency,
	}, nil
}

// ConfirmPayment turns a succeeded payment intent into an order. Calling it
// again for the same intent returns the existing order.
func (s *Service) ConfirmPayment(ctx context.Context, userID, intentID string) (*order.Order, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}
	if intentID == "" {
		return nil, apperror.Validation("Payment intent id is required")
	}
	if s.gateway == nil {
		return nil, apperror.ExternalService(payment.ErrNotConfigured, "Payments are not available")
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, apperror.ExternalService(err, "Failed to verify payment")
	}
	if intent.UserID != userID {
		return nil, apperror.NotFound("Payment not found")
	}
	if !intent.Succeeded() {
		return nil, apperror.Precondition("Payment has not succeeded (status: %s)", intent.Status)
	}

	return s.finalize(ctx, intent)
}

// HandleWebhook processes a signed processor notification
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.gateway == nil {
		return apperror.ExternalService(payment.ErrNotConfigured, "Payments are not available")
	}

	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		s.logger.WithError(err).Warn("Rejected webhook")
		return apperror.Validation("Invalid webhook payload")
	}

	log := s.logger.WithFields(logrus.Fields{"event_id": event.ID, "event_type": event.Type})

	switch event.Type {
	case payment.EventIntentSucceeded:
		if event.Intent == nil || event.Intent.UserID == "" {
			log.Warn("Payment intent without user metadata ignored")
			return nil
		}
		if _, err := s.finalize(ctx, event.Intent); err != nil {
			if apperror.KindOf(err) == apperror.KindPrecondition {
				log.WithError(err).Error("Payment succeeded but no order could be built; reconcile manually")
				return nil
			}
			return err
		}
	case payment.EventIntentFailed:
		if event.Intent == nil {
			return nil
		}
		if err := s.orders.MarkPaymentFailed(ctx, event.Intent.ID, event.Intent.FailureMessage); err != nil {
			return err
		}
		log.WithField("payment_intent", event.Intent.ID).Info("Payment failed")
	default:
		log.Debug("Ignoring webhook event")
	}

	return nil
}

// Reconcile re-checks payments that stayed pending longer than olderThan and
// finalizes the ones the processor reports as succeeded.
func (s *Service) Reconcile(ctx context.Context, olderThan time.Duration) (*ReconcileReport, error) {
	if s.gateway == nil {
		return nil, apperror.ExternalService(payment.ErrNotConfigured, "Payments are not available")
	}

	pending, err := s.orders.PendingPayments(ctx, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{}
	for i := range pending {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Checked++

		p := pending[i]
		log := s.logger.WithField("payment_intent", p.ProviderID)

		intent, err := s.gateway.GetPaymentIntent(ctx, p.ProviderID)
		if err != nil {
			log.WithError(err).Warn("Reconcile: failed to fetch payment intent")
			report.Errors++
			continue
		}
		if intent.UserID == "" {
			intent.UserID = p.UserID
		}

		switch intent.Status {
		case payment.StatusSucceeded:
			if _, err := s.finalize(ctx, intent); err != nil {
				log.WithError(err).Error("Reconcile: failed to finalize payment")
				report.Errors++
				continue
			}
			report.Finalized++
		case payment.StatusCanceled:
			if err := s.orders.MarkPaymentFailed(ctx, p.ProviderID, intent.FailureMessage); err != nil {
				report.Errors++
				continue
			}
			report.Failed++
		default:
			// requires_payment_method is also the initial state of every intent
			report.StillPending++
		}
	}

	return report, nil
}

// finalize writes the order, marks the payment paid and clears the cart in a
// single transaction.
func (s *Service) finalize(ctx context.Context, intent *payment.Intent) (*order.Order, error) {
	var (
		result  *order.Order
		created bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.orders.FindByPaymentIntentTx(tx, intent.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = existing
			return nil
		}

		items, err := s.carts.ItemsTx(tx, intent.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperror.Precondition("Cart is empty; nothing to finalize for payment %s", intent.ID)
		}

		o := buildOrder(intent, items, s.currency)
		if snapshot := cart.ToMinorUnits(o.ItemsTotal()); snapshot != o.AmountPaidMinor {
			o.Status = order.OrderStatusNeedsReview
			s.logger.WithFields(logrus.Fields{
				"payment_intent": intent.ID,
				"paid_minor":     o.AmountPaidMinor,
				"cart_minor":     snapshot,
			}).Warn("Charged amount differs from cart snapshot")
		}

		if err := s.orders.CreateTx(tx, o); err != nil {
			return err
		}

		if err := s.orders.MarkPaymentPaidTx(tx, &order.Payment{
			UserID:      intent.UserID,
			ProviderID:  intent.ID,
			AmountMinor: o.AmountPaidMinor,
			Currency:    o.Currency,
		}, o.ID); err != nil {
			return err
		}

		if err := s.carts.ClearTx(tx, intent.UserID); err != nil {
			return err
		}

		result = o
		created = true
		return nil
	})
	if err != nil {
		// A concurrent confirmation may have committed the same intent first.
		if existing, ferr := s.orders.FindByPaymentIntentTx(s.db.WithContext(ctx), intent.ID); ferr == nil && existing != nil {
			return existing, nil
		}
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to finalize payment %s: %w", intent.ID, err)
	}

	if created {
		s.logger.WithFields(logrus.Fields{
			"order_number":   result.OrderNumber,
			"payment_intent": intent.ID,
			"user_id":        intent.UserID,
			"status":         result.Status,
		}).Info("Order created")
		s.notify(ctx, intent.UserID, result)
	}

	return result, nil
}

// idempotencyKey identifies one priced cart. Repeated requests for an
// unchanged cart map to the same processor intent; any line edit yields a new
// key. Line ids and update times keep a re-filled cart from reusing the key of
// an already paid one.
func idempotencyKey(userID, currency string, c *cart.Cart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%d", userID, currency, c.Totals.AmountMinor)
	for i := range c.Items {
		item := &c.Items[i]
		fmt.Fprintf(&b, "|%d:%d:%d:%d", item.ID, item.ProductID, item.Quantity, item.UpdatedAt.UnixNano())
	}
	return "checkout-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(b.String())).String()
}

func buildOrder(intent *payment.Intent, items []cart.CartItem, defaultCurrency string) *order.Order {
	o := &order.Order{
		UserID:          intent.UserID,
		Status:          order.OrderStatusPaid,
		PaymentIntentID: intent.ID,
		Currency:        intent.Currency,
		AmountPaidMinor: intent.AmountReceived,
		Items:           make([]order.OrderItem, 0, len(items)),
	}
	if o.Currency == "" {
		o.Currency = defaultCurrency
	}
	if o.AmountPaidMinor == 0 {
		o.AmountPaidMinor = intent.AmountMinor
	}

	for i := range items {
		o.Items = append(o.Items, order.OrderItem{
			ProductID: items[i].ProductID,
			Name:      items[i].Product.Name,
			Quantity:  items[i].Quantity,
			UnitPrice: items[i].Product.Price,
		})
	}

	return o
}

// ensureCustomer returns the user's processor customer id, creating one on
// first use. Failures are logged and the intent is created without a customer.
func (s *Service) ensureCustomer(ctx context.Context, userID string) string {
	if s.users == nil {
		return ""
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return ""
	}
	if u.StripeCustomerID != nil && *u.StripeCustomerID != "" {
		return *u.StripeCustomerID
	}

	customerID, err := s.gateway.CreateCustomer(ctx, payment.CustomerParams{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.GetFullName(),
	})
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to create payment customer")
		return ""
	}

	if _, err := s.users.UpdateStripeCustomer(ctx, userID, customerID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to store payment customer")
	}

	return customerID
}

func (s *Service) notify(ctx context.Context, userID string, o *order.Order) {
	if s.notifier == nil || s.users == nil {
		return
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil || u.Email == "" {
		return
	}

	if err := s.notifier.OrderConfirmed(ctx, u, o); err != nil {
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).Warn("Failed to send order confirmation")
	}
}
