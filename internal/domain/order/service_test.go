package order

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "order.db")), &gorm.Config{
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

	if err := db.AutoMigrate(&Order{}, &OrderItem{}, &Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOrder(userID, intentID string) *Order {
	return &Order{
		UserID:          userID,
		PaymentIntentID: intentID,
		Currency:        "usd",
		AmountPaidMinor: 4498,
		Items: []OrderItem{
			{ProductID: 1, Name: "Controller", Quantity: 2, UnitPrice: decimal.RequireFromString("22.49")},
		},
	}
}

func createOrder(t *testing.T, db *gorm.DB, svc *Service, o *Order) {
	t.Helper()
	if err := db.Transaction(func(tx *gorm.DB) error {
		return svc.CreateTx(tx, o)
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}
}

func TestCreateTxFillsDefaults(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	o := newOrder("user-1", "pi_1")
	createOrder(t, db, svc, o)

	if o.ID == 0 {
		t.Fatalf("expected order id to be assigned")
	}
	if !regexp.MustCompile(`^GP-\d{8}-[0-9A-F]{8}$`).MatchString(o.OrderNumber) {
		t.Fatalf("unexpected order number %q", o.OrderNumber)
	}
	if o.Status != OrderStatusPaid {
		t.Fatalf("expected paid status, got %s", o.Status)
	}
	if !o.TotalAmount.Equal(decimal.RequireFromString("44.98")) {
		t.Fatalf("expected total 44.98, got %s", o.TotalAmount)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.CreateTx(tx, &Order{UserID: "user-1", PaymentIntentID: "pi_empty"})
	})
	if apperror.KindOf(err) != apperror.KindPrecondition {
		t.Fatalf("expected precondition failure for empty order, got %v", err)
	}
}

func TestPaymentIntentIsUnique(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	createOrder(t, db, svc, newOrder("user-1", "pi_dup"))

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.CreateTx(tx, newOrder("user-1", "pi_dup"))
	})
	if err == nil {
		t.Fatalf("expected unique violation for a second order on the same intent")
	}

	found, err := svc.FindByPaymentIntentTx(db, "pi_dup")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || len(found.Items) != 1 {
		t.Fatalf("expected existing order with items, got %+v", found)
	}

	missing, err := svc.FindByPaymentIntentTx(db, "pi_unknown")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown intent, got %+v, %v", missing, err)
	}
}

func TestListAndGetAreScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first := newOrder("user-1", "pi_a")
	first.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	createOrder(t, db, svc, first)

	second := newOrder("user-1", "pi_b")
	second.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	createOrder(t, db, svc, second)

	createOrder(t, db, svc, newOrder("user-2", "pi_c"))

	orders, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != second.ID {
		t.Fatalf("expected 2 orders newest first, got %+v", orders)
	}
	if len(orders[0].Items) != 1 || orders[0].Items[0].Name != "Controller" {
		t.Fatalf("expected preloaded items, got %+v", orders[0].Items)
	}

	if _, err := svc.GetForUser(ctx, "user-2", first.ID); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found for another user's order, got %v", err)
	}
	got, err := svc.GetForUser(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PaymentIntentID != "pi_a" {
		t.Fatalf("unexpected order %+v", got)
	}

	if _, err := svc.ListForUser(ctx, ""); apperror.KindOf(err) != apperror.KindUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	o := newOrder("user-1", "pi_status")
	createOrder(t, db, svc, o)

	updated, err := svc.UpdateStatus(ctx, o.ID, OrderStatusFulfilled)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != OrderStatusFulfilled {
		t.Fatalf("expected fulfilled, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, o.ID, "shipped-by-owl"); apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, 999, OrderStatusCancelled); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPaymentLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	pending := &Payment{UserID: "user-1", ProviderID: "pi_pay", AmountMinor: 4498, Currency: "usd"}
	if err := svc.RecordPayment(ctx, pending); err != nil {
		t.Fatalf("record: %v", err)
	}
	dup := &Payment{UserID: "user-1", ProviderID: "pi_pay", AmountMinor: 1, Currency: "usd"}
	if err := svc.RecordPayment(ctx, dup); err != nil {
		t.Fatalf("record duplicate: %v", err)
	}

	var count int64
	db.Model(&Payment{}).Where("provider_id = ?", "pi_pay").Count(&count)
	if count != 1 {
		t.Fatalf("expected one payment row, got %d", count)
	}

	stale, err := svc.PendingPayments(ctx, time.Now().Add(48*time.Hour))
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(stale) != 1 || stale[0].AmountMinor != 4498 {
		t.Fatalf("expected the first pending row, got %+v", stale)
	}

	o := newOrder("user-1", "pi_pay")
	createOrder(t, db, svc, o)
	if err := svc.MarkPaymentPaidTx(db, &Payment{UserID: "user-1", ProviderID: "pi_pay", AmountMinor: 4498, Currency: "usd"}, o.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	// A late failure notification must not downgrade a paid payment.
	if err := svc.MarkPaymentFailed(ctx, "pi_pay", "card declined"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	var stored Payment
	if err := db.Where("provider_id = ?", "pi_pay").First(&stored).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if stored.Status != PaymentStatusPaid || stored.OrderID == nil || *stored.OrderID != o.ID {
		t.Fatalf("unexpected payment after lifecycle: %+v", stored)
	}

	stale, err = svc.PendingPayments(ctx, time.Now().Add(48*time.Hour))
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("paid payment should not be pending, got %+v", stale)
	}
}

func TestMarkPaymentFailed(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	if err := svc.RecordPayment(ctx, &Payment{UserID: "user-1", ProviderID: "pi_fail", AmountMinor: 100, Currency: "usd"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.MarkPaymentFailed(ctx, "pi_fail", "insufficient funds"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	var stored Payment
	if err := db.Where("provider_id = ?", "pi_fail").First(&stored).Error; err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if stored.Status != PaymentStatusFailed || stored.FailureNote != "insufficient funds" {
		t.Fatalf("unexpected payment %+v", stored)
	}
}
