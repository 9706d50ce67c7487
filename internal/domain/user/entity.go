// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User mirrors an account owned by the external identity provider. The id is
// the provider's subject and is never generated here.
type User struct {
	ID               string     `gorm:"primaryKey;size:255" json:"id"`
	Email            string     `gorm:"size:255;index" json:"email"`
	FirstName        string     `gorm:"size:100" json:"firstName"`
	LastName         string     `gorm:"size:100" json:"lastName"`
	ProfileImageURL  string     `gorm:"size:500" json:"profileImageUrl"`
	StripeCustomerID *string    `gorm:"size:255;uniqueIndex" json:"stripeCustomerId,omitempty"`
	LastSeenAt       *time.Time `json:"lastSeenAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeSave normalizes the email address
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetDisplayName returns display name (full name or email)
func (u *User) GetDisplayName() string {
	fullName := u.GetFullName()
	if fullName != "" {
		return fullName
	}
	return u.Email
}

// Profile is the identity data asserted by the session token
type Profile struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}
