// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// User represents a registered customer
type User struct {
	ID           uint       `gorm:"column:user_id;primaryKey" json:"id"`
	FirstName    string     `gorm:"column:first_name;size:50;not null" json:"first_name"`
	LastName     string     `gorm:"column:last_name;size:50;not null" json:"last_name"`
	Email        string     `gorm:"column:email;size:100;unique;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	PhoneNumber  *string    `gorm:"column:phone_number;size:15" json:"phone_number,omitempty"`
	DateCreated  time.Time  `gorm:"column:date_created;default:CURRENT_TIMESTAMP" json:"date_created"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"-"`

	// Relationships
	Addresses []ShippingAddress `gorm:"foreignKey:UserID;references:ID" json:"addresses,omitempty"`
}

// ShippingAddress is a delivery address owned by a user
type ShippingAddress struct {
	ID            uint    `gorm:"column:address_id;primaryKey" json:"id"`
	UserID        *uint   `gorm:"column:user_id" json:"user_id"`
	StreetAddress string  `gorm:"column:street_address;size:255;not null" json:"street_address"`
	City          string  `gorm:"column:city;size:100;not null" json:"city"`
	Province      *string `gorm:"column:province;size:100" json:"province,omitempty"`
	Country       string  `gorm:"column:country;size:100;not null" json:"country"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for ShippingAddress
func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}

// NormalizeEmail lowercases and trims an email before it is stored or looked up
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsDeleted reports whether the soft-delete marker is set
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
