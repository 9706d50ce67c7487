// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gaming-palace/storefront/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles the local copy of identity-provider users
type Service struct {
	db *gorm.DB
}

// NewService creates a new user service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// Upsert inserts the user on first sight and refreshes the profile fields on
// every later call. The payment customer reference is left alone.
func (s *Service) Upsert(ctx context.Context, profile Profile) (*User, error) {
	if profile.ID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}

	now := time.Now().UTC()
	u := User{
		ID:              profile.ID,
		Email:           profile.Email,
		FirstName:       profile.FirstName,
		LastName:        profile.LastName,
		ProfileImageURL: profile.ProfileImageURL,
		LastSeenAt:      &now,
	}

	db := s.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "last_seen_at", "updated_at"}),
	}).Create(&u).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return s.Get(ctx, profile.ID)
}

// Get retrieves a user by id
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &u, nil
}

// UpdateStripeCustomer stores the payment processor's customer reference
func (s *Service) UpdateStripeCustomer(ctx context.Context, id, customerID string) (*User, error) {
	result := s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stripe_customer_id": customerID,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update payment customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("User not found")
	}

	return s.Get(ctx, id)
}
