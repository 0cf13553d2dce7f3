package wishlist

import (
	"time"
)

// Item represents a variant a user saved for later
type Item struct {
	ID        uint      `gorm:"column:wishlist_item_id;primaryKey" json:"id"`
	UserID    *uint     `gorm:"column:user_id" json:"user_id"`
	VariantID *uint     `gorm:"column:variant_id" json:"variant_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "wishlist"
}
