// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service handles catalog queries and admin catalog writes
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// ListFilter represents product list query parameters
type ListFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,max=255"`
	Description   string           `json:"description" binding:"required"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Category      string           `json:"category" binding:"required,max=100"`
	ImageURL      string           `json:"imageUrl" binding:"required,max=500"`
	Rating        *decimal.Decimal `json:"rating"`
	ReviewCount   *int             `json:"reviewCount" binding:"omitempty,min=0"`
	InStock       *bool            `json:"inStock"`
	IsHot         bool             `json:"isHot"`
}

// List returns products newest first. A search keyword takes precedence over
// the category filter; category "all" means no filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	if strings.TrimSpace(filter.Search) != "" {
		return s.Search(ctx, filter.Search)
	}

	query := s.db.WithContext(ctx).Model(&Product{})

	category := strings.TrimSpace(filter.Category)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var products []Product
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, nil
}

// Search matches the keyword case-insensitively against name and description
func (s *Service) Search(ctx context.Context, keyword string) ([]Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.List(ctx, ListFilter{})
	}

	search := "%" + escapeLike(strings.ToLower(keyword)) + "%"

	var products []Product
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'", search, search).
		Order("created_at DESC, id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// Get retrieves a single product
func (s *Service) Get(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	return &product, nil
}

// Create adds a product to the catalog
func (s *Service) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	product := Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      strings.TrimSpace(req.Category),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		InStock:       true,
		IsHot:         req.IsHot,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := validateProduct(&product); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// InitCatalog inserts the default catalog when no products exist yet.
// It returns the number of products inserted.
func (s *Service) InitCatalog(ctx context.Context) (int, error) {
	var inserted int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Product{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			return nil
		}

		products := DefaultCatalog()
		for i := range products {
			if err := validateProduct(&products[i]); err != nil {
				return fmt.Errorf("invalid seed product %q: %w", products[i].Name, err)
			}
		}

		if err := tx.CreateInBatches(&products, 50).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		inserted = len(products)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func validateProduct(p *Product) error {
	if p.Name == "" {
		return apperror.Validation("Product name is required")
	}
	if !p.Price.IsPositive() {
		return apperror.Validation("Product price must be greater than 0")
	}
	if p.OriginalPrice != nil && !p.OriginalPrice.GreaterThan(p.Price) {
		return apperror.Validation("Original price must be greater than price")
	}
	if p.Rating != nil && (p.Rating.LessThan(decimal.Zero) || p.Rating.GreaterThan(decimal.NewFromInt(5))) {
		return apperror.Validation("Rating must be between 0 and 5")
	}
	return nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
