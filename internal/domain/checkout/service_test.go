package checkout

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gaming-palace/storefront/internal/domain/cart"
	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/payment"
	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/gaming-palace/storefront/internal/pkg/logger"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeGateway struct {
	mu          sync.Mutex
	intents     map[string]*payment.Intent
	events      map[string]*payment.Event
	createCalls int
	createErr   error
	keys        []string
	customers   int
	next        int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		intents: map[string]*payment.Intent{},
		events:  map[string]*payment.Event{},
	}
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, params payment.CreateIntentParams) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.createCalls++
	g.keys = append(g.keys, params.IdempotencyKey)
	if g.createErr != nil {
		return nil, g.createErr
	}

	g.next++
	intent := &payment.Intent{
		ID:           fmt.Sprintf("pi_%d", g.next),
		ClientSecret: fmt.Sprintf("pi_%d_secret", g.next),
		AmountMinor:  params.AmountMinor,
		Currency:     params.Currency,
		Status:       payment.StatusRequiresPaymentMethod,
		UserID:       params.UserID,
	}
	g.intents[intent.ID] = intent
	copied := *intent
	return &copied, nil
}

func (g *fakeGateway) GetPaymentIntent(_ context.Context, id string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return nil, errors.New("no such payment intent")
	}
	copied := *intent
	return &copied, nil
}

func (g *fakeGateway) CreateCustomer(_ context.Context, _ payment.CustomerParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.customers++
	return fmt.Sprintf("cus_%d", g.customers), nil
}

func (g *fakeGateway) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if signature != "valid" {
		return nil, errors.New("signature mismatch")
	}
	event, ok := g.events[string(payload)]
	if !ok {
		return nil, errors.New("unknown event")
	}
	return event, nil
}

// succeed simulates the client confirming the intent with the processor
func (g *fakeGateway) succeed(id string, received int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent := g.intents[id]
	intent.Status = payment.StatusSucceeded
	intent.AmountReceived = received
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []string
}

func (n *recordingNotifier) OrderConfirmed(_ context.Context, _ *user.User, o *order.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, o.OrderNumber)
	return nil
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	carts    *cart.Service
	gateway  *fakeGateway
	notifier *recordingNotifier
	pad      product.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "checkout.db")), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&user.User{}, &product.Product{}, &cart.CartItem{}, &order.Order{}, &order.OrderItem{}, &order.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pad := product.Product{
		Name:        "Gaming Mouse Pad",
		Description: "Extra large",
		Price:       decimal.RequireFromString("22.49"),
		Category:    "game-accessories",
		ImageURL:    "https://img.example/pad.png",
		InStock:     true,
	}
	if err := db.Create(&pad).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	users := user.NewService(db)
	if _, err := users.Upsert(context.Background(), user.Profile{ID: "user-1", Email: "player@example.com", FirstName: "Pat"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	carts := cart.NewService(db)
	gateway := newFakeGateway()
	notifier := &recordingNotifier{}

	svc := NewService(Deps{
		DB:       db,
		Carts:    carts,
		Orders:   order.NewService(db),
		Users:    users,
		Gateway:  gateway,
		Notifier: notifier,
		Currency: "usd",
		Logger:   logger.Discard(),
	})

	return &fixture{db: db, svc: svc, carts: carts, gateway: gateway, notifier: notifier, pad: pad}
}

func (f *fixture) addToCart(t *testing.T, userID string, qty int) {
	t.Helper()
	if _, err := f.carts.Add(context.Background(), userID, &cart.AddToCartRequest{ProductID: f.pad.ID, Quantity: &qty}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}

func (f *fixture) cartLines(t *testing.T, userID string) int {
	t.Helper()
	c, err := f.carts.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	return len(c.Items)
}

func (f *fixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&order.Order{}).Count(&n).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return n
}

func TestCreatePaymentIntentEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePaymentIntent(context.Background(), "user-1", &PaymentIntentRequest{})
	if apperror.KindOf(err) != apperror.KindPrecondition {
		t.Fatalf("expected precondition failure, got %v", err)
	}
	if f.gateway.createCalls != 0 {
		t.Fatalf("gateway must not be called for an empty cart, got %d calls", f.gateway.createCalls)
	}
}

func TestCreatePaymentIntentUsesServerTotal(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 2)

	resp, err := f.svc.CreatePaymentIntent(context.Background(), "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if resp.AmountMinor != 4498 || !resp.Amount.Equal(decimal.RequireFromString("44.98")) {
		t.Fatalf("unexpected amount %+v", resp)
	}
	if resp.ClientSecret == "" || resp.Currency != "usd" {
		t.Fatalf("unexpected response %+v", resp)
	}

	var p order.Payment
	if err := f.db.Where("provider_id = ?", resp.PaymentIntentID).First(&p).Error; err != nil {
		t.Fatalf("pending payment not recorded: %v", err)
	}
	if p.Status != order.PaymentStatusPending || p.AmountMinor != 4498 {
		t.Fatalf("unexpected payment row %+v", p)
	}

	if f.cartLines(t, "user-1") != 1 {
		t.Fatalf("creating an intent must not touch the cart")
	}

	var u user.User
	if err := f.db.First(&u, "id = ?", "user-1").Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if u.StripeCustomerID == nil || *u.StripeCustomerID != "cus_1" {
		t.Fatalf("expected customer reference to be stored, got %v", u.StripeCustomerID)
	}
}

func TestCreatePaymentIntentRejectsMismatchedAmount(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 2)

	claimed := decimal.RequireFromString("10.00")
	_, err := f.svc.CreatePaymentIntent(context.Background(), "user-1", &PaymentIntentRequest{Amount: &claimed})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if f.gateway.createCalls != 0 {
		t.Fatalf("gateway must not be called on mismatch")
	}

	matching := decimal.RequireFromString("44.98")
	if _, err := f.svc.CreatePaymentIntent(context.Background(), "user-1", &PaymentIntentRequest{Amount: &matching}); err != nil {
		t.Fatalf("matching amount rejected: %v", err)
	}
}

func TestCreatePaymentIntentIdempotencyKeyFollowsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addToCart(t, "user-1", 1)

	for i := 0; i < 2; i++ {
		if _, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil); err != nil {
			t.Fatalf("create intent %d: %v", i, err)
		}
	}
	f.addToCart(t, "user-1", 1)
	if _, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil); err != nil {
		t.Fatalf("create intent after cart change: %v", err)
	}
	f.addToCart(t, "user-2", 1)
	if _, err := f.svc.CreatePaymentIntent(ctx, "user-2", nil); err != nil {
		t.Fatalf("create intent for second user: %v", err)
	}

	keys := f.gateway.keys
	if len(keys) != 4 {
		t.Fatalf("expected 4 gateway calls, got %d", len(keys))
	}
	if keys[0] == "" || keys[0] != keys[1] {
		t.Fatalf("unchanged cart should reuse its key, got %q and %q", keys[0], keys[1])
	}
	if keys[2] == keys[1] {
		t.Fatalf("changed cart must get a new key")
	}
	if keys[3] == keys[0] || keys[3] == keys[2] {
		t.Fatalf("keys must differ between users")
	}
}

func TestCreatePaymentIntentGatewayFailure(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 1)
	f.gateway.createErr = errors.New("processor unavailable")

	_, err := f.svc.CreatePaymentIntent(context.Background(), "user-1", nil)
	if apperror.KindOf(err) != apperror.KindExternalService {
		t.Fatalf("expected external service failure, got %v", err)
	}
	if f.cartLines(t, "user-1") != 1 {
		t.Fatalf("cart must be intact after a gateway failure")
	}
	if f.countOrders(t) != 0 {
		t.Fatalf("no order may exist after a gateway failure")
	}
}

func TestCreatePaymentIntentWithoutGateway(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 1)
	f.svc.gateway = nil

	_, err := f.svc.CreatePaymentIntent(context.Background(), "user-1", nil)
	if !errors.Is(err, payment.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured in chain, got %v", err)
	}
}

func TestConfirmPaymentCreatesOrderAtomically(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 2)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	f.gateway.succeed(resp.PaymentIntentID, resp.AmountMinor)

	o, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if o.Status != order.OrderStatusPaid {
		t.Fatalf("expected paid order, got %s", o.Status)
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 || o.Items[0].Name != "Gaming Mouse Pad" {
		t.Fatalf("order items do not match cart snapshot: %+v", o.Items)
	}
	if !o.Items[0].UnitPrice.Equal(decimal.RequireFromString("22.49")) {
		t.Fatalf("unexpected captured unit price %s", o.Items[0].UnitPrice)
	}
	if !o.TotalAmount.Equal(decimal.RequireFromString("44.98")) {
		t.Fatalf("unexpected total %s", o.TotalAmount)
	}
	if f.cartLines(t, "user-1") != 0 {
		t.Fatalf("cart should be empty after confirmation")
	}

	var p order.Payment
	if err := f.db.Where("provider_id = ?", resp.PaymentIntentID).First(&p).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if p.Status != order.PaymentStatusPaid || p.OrderID == nil || *p.OrderID != o.ID {
		t.Fatalf("payment not linked to order: %+v", p)
	}

	if len(f.notifier.orders) != 1 || f.notifier.orders[0] != o.OrderNumber {
		t.Fatalf("expected one confirmation notice, got %v", f.notifier.orders)
	}

	// Later price changes never touch the stored order.
	if err := f.db.Model(&product.Product{}).Where("id = ?", f.pad.ID).Update("price", decimal.RequireFromString("99.99")).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}
	stored, err := order.NewService(f.db).GetForUser(ctx, "user-1", o.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if !stored.Items[0].UnitPrice.Equal(decimal.RequireFromString("22.49")) {
		t.Fatalf("stored unit price followed the catalog: %s", stored.Items[0].UnitPrice)
	}
}

func TestConfirmPaymentRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 2)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	f.gateway.succeed(resp.PaymentIntentID, resp.AmountMinor)

	// Clearing the cart is the last write of the transaction.
	const failClear = "test:fail_cart_clear"
	err = f.db.Callback().Delete().Before("gorm:delete").Register(failClear, func(db *gorm.DB) {
		if db.Statement.Table == "cart_items" {
			_ = db.AddError(errors.New("cart store unavailable"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if _, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID); err == nil {
		t.Fatalf("expected confirmation to fail")
	}

	if f.countOrders(t) != 0 {
		t.Fatalf("order survived a failed confirmation")
	}
	var items int64
	if err := f.db.Model(&order.OrderItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count order items: %v", err)
	}
	if items != 0 {
		t.Fatalf("expected no order items, got %d", items)
	}
	if f.cartLines(t, "user-1") != 1 {
		t.Fatalf("cart must keep its lines after a failed confirmation")
	}
	var p order.Payment
	if err := f.db.Where("provider_id = ?", resp.PaymentIntentID).First(&p).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if p.Status != order.PaymentStatusPending || p.OrderID != nil {
		t.Fatalf("payment must stay pending, got %+v", p)
	}
	if len(f.notifier.orders) != 0 {
		t.Fatalf("no notice may be sent for a rolled back order")
	}

	if err := f.db.Callback().Delete().Remove(failClear); err != nil {
		t.Fatalf("remove callback: %v", err)
	}
	o, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID)
	if err != nil {
		t.Fatalf("retry confirm: %v", err)
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 {
		t.Fatalf("retry should build the order from the intact cart, got %+v", o.Items)
	}
	if f.cartLines(t, "user-1") != 0 {
		t.Fatalf("cart should be empty after the retry")
	}
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 1)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	f.gateway.succeed(resp.PaymentIntentID, resp.AmountMinor)

	first, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	// The user shops again before the duplicate confirmation arrives.
	f.addToCart(t, "user-1", 3)

	second, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same order, got %d and %d", first.ID, second.ID)
	}
	if f.countOrders(t) != 1 {
		t.Fatalf("expected exactly one order")
	}
	if f.cartLines(t, "user-1") != 1 {
		t.Fatalf("duplicate confirmation must not clear the new cart")
	}
	if len(f.notifier.orders) != 1 {
		t.Fatalf("duplicate confirmation must not notify again, got %v", f.notifier.orders)
	}
}

func TestConfirmPaymentRejectsUnsettledOrForeignIntents(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 1)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	if _, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID); apperror.KindOf(err) != apperror.KindPrecondition {
		t.Fatalf("expected precondition failure for unpaid intent, got %v", err)
	}
	if f.cartLines(t, "user-1") != 1 {
		t.Fatalf("cart must be intact when payment has not succeeded")
	}

	f.gateway.succeed(resp.PaymentIntentID, resp.AmountMinor)
	if _, err := f.svc.ConfirmPayment(ctx, "intruder", resp.PaymentIntentID); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found for another user's intent, got %v", err)
	}
	if _, err := f.svc.ConfirmPayment(ctx, "user-1", "pi_missing"); apperror.KindOf(err) != apperror.KindExternalService {
		t.Fatalf("expected external service failure for unknown intent, got %v", err)
	}
	if f.countOrders(t) != 0 {
		t.Fatalf("no order may be created by rejected confirmations")
	}
}

func TestConfirmPaymentFlagsAmountMismatch(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 1)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}

	// The cart grew after the intent was priced.
	f.addToCart(t, "user-1", 1)
	f.gateway.succeed(resp.PaymentIntentID, resp.AmountMinor)

	o, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if o.Status != order.OrderStatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", o.Status)
	}
	if o.AmountPaidMinor != 2249 {
		t.Fatalf("expected amount paid 2249, got %d", o.AmountPaidMinor)
	}
	if !o.TotalAmount.Equal(decimal.RequireFromString("44.98")) {
		t.Fatalf("order total should reflect the snapshot, got %s", o.TotalAmount)
	}
}

func TestHandleWebhook(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 2)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	f.gateway.succeed(resp.PaymentIntentID, resp.AmountMinor)
	intent, _ := f.gateway.GetPaymentIntent(ctx, resp.PaymentIntentID)
	f.gateway.events["succeeded"] = &payment.Event{ID: "evt_1", Type: payment.EventIntentSucceeded, Intent: intent}

	if err := f.svc.HandleWebhook(ctx, []byte("succeeded"), "forged"); apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation failure for bad signature, got %v", err)
	}

	if err := f.svc.HandleWebhook(ctx, []byte("succeeded"), "valid"); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if err := f.svc.HandleWebhook(ctx, []byte("succeeded"), "valid"); err != nil {
		t.Fatalf("redelivered webhook: %v", err)
	}
	if f.countOrders(t) != 1 {
		t.Fatalf("expected one order after redelivery, got %d", f.countOrders(t))
	}

	// The client confirmation racing the webhook returns the same order.
	o, err := f.svc.ConfirmPayment(ctx, "user-1", resp.PaymentIntentID)
	if err != nil {
		t.Fatalf("confirm after webhook: %v", err)
	}
	if o.PaymentIntentID != resp.PaymentIntentID {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestHandleWebhookMarksFailedPayments(t *testing.T) {
	f := newFixture(t)
	f.addToCart(t, "user-1", 1)
	ctx := context.Background()

	resp, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	f.gateway.events["failed"] = &payment.Event{
		ID:   "evt_2",
		Type: payment.EventIntentFailed,
		Intent: &payment.Intent{
			ID:             resp.PaymentIntentID,
			Status:         payment.StatusRequiresPaymentMethod,
			UserID:         "user-1",
			FailureMessage: "card declined",
		},
	}
	f.gateway.events["other"] = &payment.Event{ID: "evt_3", Type: "charge.refunded"}

	if err := f.svc.HandleWebhook(ctx, []byte("failed"), "valid"); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if err := f.svc.HandleWebhook(ctx, []byte("other"), "valid"); err != nil {
		t.Fatalf("unhandled event types should be acknowledged: %v", err)
	}

	var p order.Payment
	if err := f.db.Where("provider_id = ?", resp.PaymentIntentID).First(&p).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if p.Status != order.PaymentStatusFailed || p.FailureNote != "card declined" {
		t.Fatalf("unexpected payment %+v", p)
	}
	if f.cartLines(t, "user-1") != 1 {
		t.Fatalf("failed payment must leave the cart intact")
	}
}

func TestHandleWebhookAcknowledgesEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gateway.events["orphan"] = &payment.Event{
		ID:   "evt_4",
		Type: payment.EventIntentSucceeded,
		Intent: &payment.Intent{
			ID:             "pi_orphan",
			Status:         payment.StatusSucceeded,
			UserID:         "user-1",
			AmountMinor:    1000,
			AmountReceived: 1000,
		},
	}

	if err := f.svc.HandleWebhook(ctx, []byte("orphan"), "valid"); err != nil {
		t.Fatalf("expected acknowledgement, got %v", err)
	}
	if f.countOrders(t) != 0 {
		t.Fatalf("no order can be built from an empty cart")
	}
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addToCart(t, "user-1", 1)
	paid, err := f.svc.CreatePaymentIntent(ctx, "user-1", nil)
	if err != nil {
		t.Fatalf("create paid intent: %v", err)
	}
	f.gateway.succeed(paid.PaymentIntentID, paid.AmountMinor)

	f.addToCart(t, "user-2", 1)
	abandoned, err := f.svc.CreatePaymentIntent(ctx, "user-2", nil)
	if err != nil {
		t.Fatalf("create abandoned intent: %v", err)
	}
	f.gateway.intents[abandoned.PaymentIntentID].Status = payment.StatusCanceled

	f.addToCart(t, "user-3", 1)
	processing, err := f.svc.CreatePaymentIntent(ctx, "user-3", nil)
	if err != nil {
		t.Fatalf("create processing intent: %v", err)
	}
	f.gateway.intents[processing.PaymentIntentID].Status = payment.StatusProcessing

	// Left untouched: still awaiting a payment method.
	f.addToCart(t, "user-4", 1)
	if _, err := f.svc.CreatePaymentIntent(ctx, "user-4", nil); err != nil {
		t.Fatalf("create unpaid intent: %v", err)
	}

	// A negative age selects every pending payment regardless of when it was created.
	report, err := f.svc.Reconcile(ctx, -48*time.Hour)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.Checked != 4 || report.Finalized != 1 || report.Failed != 1 || report.StillPending != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if f.cartLines(t, "user-1") != 0 || f.cartLines(t, "user-2") != 1 {
		t.Fatalf("reconcile should only clear carts of finalized payments")
	}

	again, err := f.svc.Reconcile(ctx, -48*time.Hour)
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if again.Checked != 2 || again.StillPending != 2 {
		t.Fatalf("settled payments should drop out of reconciliation, got %+v", again)
	}
}
