package product

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "product.db")), &gorm.Config{
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

	if err := db.AutoMigrate(append([]interface{}{&Product{}, &Review{}}, models...)...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func insertProduct(t *testing.T, db *gorm.DB, name, description, category string, createdAt time.Time) Product {
	t.Helper()

	p := Product{
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString("19.99"),
		Category:    category,
		ImageURL:    "https://img.example/p.png",
		InStock:     true,
		CreatedAt:   createdAt,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return p
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i := range products {
		out[i] = products[i].Name
	}
	return out
}

func TestListFiltersAndOrdering(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	insertProduct(t, db, "Old Game", "A classic", "games", base)
	insertProduct(t, db, "Headset", "Surround sound", "game-accessories", base.Add(time.Hour))
	insertProduct(t, db, "New Game", "Fresh release", "games", base.Add(2*time.Hour))

	all, err := svc.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := names(all)
	want := []string{"New Game", "Headset", "Old Game"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected newest first %v, got %v", want, got)
		}
	}

	games, err := svc.List(ctx, ListFilter{Category: "games"})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 || games[0].Name != "New Game" {
		t.Fatalf("unexpected category result %v", names(games))
	}

	everything, err := svc.List(ctx, ListFilter{Category: "all"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(everything) != 3 {
		t.Fatalf("category all should not filter, got %d", len(everything))
	}

	none, err := svc.List(ctx, ListFilter{Category: "laptops"})
	if err != nil {
		t.Fatalf("list laptops: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no laptops, got %v", names(none))
	}
}

func TestSearchIsCaseInsensitiveAndWinsOverCategory(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	insertProduct(t, db, "DualSense Controller", "Haptic feedback", "game-accessories", now)
	insertProduct(t, db, "Racing Wheel", "Works with any CONTROLLER port", "game-accessories", now.Add(time.Minute))
	insertProduct(t, db, "100% Cotton Tee", "Merch", "merch", now.Add(2*time.Minute))

	found, err := svc.List(ctx, ListFilter{Category: "games", Search: "controller"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 || found[0].Name != "Racing Wheel" {
		t.Fatalf("unexpected search result %v", names(found))
	}

	percent, err := svc.Search(ctx, "100%")
	if err != nil {
		t.Fatalf("search percent: %v", err)
	}
	if len(percent) != 1 || percent[0].Name != "100% Cotton Tee" {
		t.Fatalf("wildcards should be matched literally, got %v", names(percent))
	}

	blank, err := svc.Search(ctx, "   ")
	if err != nil {
		t.Fatalf("blank search: %v", err)
	}
	if len(blank) != 3 {
		t.Fatalf("blank search should list everything, got %d", len(blank))
	}
}

func TestGetReportsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	_, err := svc.Get(context.Background(), 404)
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateValidatesPrices(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	lower := decimal.RequireFromString("10.00")
	_, err := svc.Create(ctx, &CreateProductRequest{
		Name:          "Bad Deal",
		Description:   "Original below price",
		Price:         decimal.RequireFromString("20.00"),
		OriginalPrice: &lower,
		Category:      "games",
		ImageURL:      "https://img.example/x.png",
	})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	outOfStock := false
	p, err := svc.Create(ctx, &CreateProductRequest{
		Name:        "  Retro Console  ",
		Description: "Refurbished",
		Price:       decimal.RequireFromString("89.50"),
		Category:    "electronics",
		ImageURL:    "https://img.example/retro.png",
		InStock:     &outOfStock,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Retro Console" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}

	stored, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.InStock {
		t.Fatalf("explicit inStock=false was not persisted")
	}
	if !stored.Price.Equal(decimal.RequireFromString("89.50")) {
		t.Fatalf("unexpected stored price %s", stored.Price)
	}
}

func TestInitCatalogOnlySeedsEmptyTable(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	inserted, err := svc.InitCatalog(ctx)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if inserted != len(DefaultCatalog()) {
		t.Fatalf("expected %d inserted, got %d", len(DefaultCatalog()), inserted)
	}

	again, err := svc.InitCatalog(ctx)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if again != 0 {
		t.Fatalf("second init should insert nothing, got %d", again)
	}
}

func TestDiscountPercentage(t *testing.T) {
	original := decimal.RequireFromString("69.99")
	p := Product{Price: decimal.RequireFromString("45.00"), OriginalPrice: &original}

	if !p.HasDiscount() {
		t.Fatalf("expected discount")
	}
	if got := p.GetDiscountPercentage(); got != 35 {
		t.Fatalf("expected 35%% off, got %d", got)
	}

	p.OriginalPrice = nil
	if p.GetDiscountPercentage() != 0 {
		t.Fatalf("expected no discount without original price")
	}
}
