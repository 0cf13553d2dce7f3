// internal/domain/cart/entity.go
package cart

// CartItem represents a quantity of a variant sitting in a cart.
// The table carries no user column.
type CartItem struct {
	ID        uint  `gorm:"column:cart_item_id;primaryKey" json:"id"`
	VariantID *uint `gorm:"column:variant_id" json:"variant_id"`
	Quantity  int   `gorm:"column:quantity;not null;check:quantity > 0" json:"quantity"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}
