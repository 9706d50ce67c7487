// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/gaming-palace/storefront/internal/domain/cart"
	"github.com/gaming-palace/storefront/internal/domain/order"
	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/gaming-palace/storefront/internal/domain/user"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&product.Product{},
		&product.Review{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	for _, model := range Models() {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates composite indexes GORM tags cannot express
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_created ON products(category, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_product ON order_items(order_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_status_created ON payments(status, created_at)",
	}

	for _, stmt := range indexes {
		if err := m.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData loads the default catalog into an empty products table
func (m *Migration) SeedInitialData(ctx context.Context) error {
	inserted, err := product.NewService(m.db).InitCatalog(ctx)
	if err != nil {
		return err
	}

	if inserted > 0 {
		m.logger.WithField("products", inserted).Info("Seeded default catalog")
	}
	return nil
}

// RunAll migrates, indexes and seeds
func (m *Migration) RunAll(ctx context.Context) error {
	if err := m.RunAutoMigrations(); err != nil {
		return err
	}
	if err := m.CreateIndexes(); err != nil {
		return err
	}
	return m.SeedInitialData(ctx)
}
