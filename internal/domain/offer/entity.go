// internal/domain/offer/entity.go
package offer

import (
	"time"
)

// DiscountType tells whether DiscountValue is an amount or a percentage
type DiscountType string

const (
	DiscountTypeFixed DiscountType = "fixed"
	DiscountTypeRate  DiscountType = "rate"
)

// Status represents whether a coupon may be redeemed
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// DiscountTypes lists every discount type in declaration order
func DiscountTypes() []DiscountType {
	return []DiscountType{DiscountTypeFixed, DiscountTypeRate}
}

// Statuses lists every offer status in declaration order
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive}
}

func (d DiscountType) IsValid() bool {
	return d == DiscountTypeFixed || d == DiscountTypeRate
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Offer is a standalone coupon with a validity window
type Offer struct {
	ID            uint         `gorm:"column:offer_id;primaryKey" json:"id"`
	CouponCode    string       `gorm:"column:coupon_code;size:50;unique;not null" json:"coupon_code"`
	DiscountType  DiscountType `gorm:"column:discount_type;type:discount_type;not null" json:"discount_type"`
	DiscountValue float64      `gorm:"column:discount_value;type:numeric(10,2);not null" json:"discount_value"`
	StartDate     time.Time    `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate       time.Time    `gorm:"column:end_date;type:date;not null" json:"end_date"`
	Description   *string      `gorm:"column:description;type:text" json:"description,omitempty"`
	Status        Status       `gorm:"column:status;type:offer_status;not null;default:active" json:"status"`
}

// TableName overrides the table name
func (Offer) TableName() string {
	return "offers"
}

// CoversDate reports whether day falls inside the inclusive validity window.
// Only the calendar date of each value is compared.
func (o *Offer) CoversDate(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(o.StartDate)) && !d.After(truncateDay(o.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
