package analytics

import (
	"time"
)

// Record stores a view count for a user and variant pair.
// Nothing in this service writes or reads it yet.
type Record struct {
	ID        uint      `gorm:"column:analytics_id;primaryKey" json:"id"`
	UserID    *uint     `gorm:"column:user_id" json:"user_id"`
	VariantID *uint     `gorm:"column:variant_id" json:"variant_id"`
	ViewCount int       `gorm:"column:view_count;not null" json:"view_count"`
	Timestamp time.Time `gorm:"column:timestamp;default:CURRENT_TIMESTAMP" json:"timestamp"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "analytics"
}
