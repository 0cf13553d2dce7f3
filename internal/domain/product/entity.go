// internal/domain/product/entity.go
package product

import (
	"time"
)

// Rating bounds enforced by the reviews table check constraint
const (
	MinRating = 1
	MaxRating = 5
)

// Category represents a node in the category tree
type Category struct {
	ID               uint       `gorm:"column:category_id;primaryKey" json:"id"`
	Name             string     `gorm:"column:category_name;size:100;not null" json:"name"`
	Description      *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ParentCategoryID *uint      `gorm:"column:parent_category_id" json:"parent_category_id"`
	DeletedAt        *time.Time `gorm:"column:deleted_at" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentCategoryID;references:ID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentCategoryID;references:ID" json:"children,omitempty"`
}

// Brand represents a product brand
type Brand struct {
	ID          uint       `gorm:"column:brand_id;primaryKey" json:"id"`
	Name        string     `gorm:"column:brand_name;size:100;not null" json:"name"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"-"`
}

// Product represents a sellable item; prices and stock live on its variants
type Product struct {
	ID         uint       `gorm:"column:product_id;primaryKey" json:"id"`
	Name       string     `gorm:"column:product_name;size:100;not null" json:"name"`
	CategoryID *uint      `gorm:"column:category_id" json:"category_id"`
	BrandID    *uint      `gorm:"column:brand_id" json:"brand_id"`
	Status     bool       `gorm:"column:status;not null" json:"status"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt  *time.Time `gorm:"column:deleted_at" json:"-"`

	// Relationships
	Category *Category        `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Brand    *Brand           `gorm:"foreignKey:BrandID;references:ID" json:"brand,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;references:ID" json:"variants,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;references:ID" json:"images,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:ProductID;references:ID" json:"reviews,omitempty"`
}

// ProductVariant is a concrete size/color combination with its own price and stock
type ProductVariant struct {
	ID            uint    `gorm:"column:variant_id;primaryKey" json:"id"`
	ProductID     uint    `gorm:"column:product_id;not null" json:"product_id"`
	Size          *string `gorm:"column:size;size:50" json:"size,omitempty"`
	Color         *string `gorm:"column:color;size:50" json:"color,omitempty"`
	Price         float64 `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	StockQuantity int     `gorm:"column:stock_quantity;not null" json:"stock_quantity"`
}

// ProductImage represents a product image
type ProductImage struct {
	ID        uint    `gorm:"column:image_id;primaryKey" json:"id"`
	ProductID *uint   `gorm:"column:product_id" json:"product_id"`
	ImageURL  string  `gorm:"column:image_url;size:255;not null" json:"image_url"`
	AltText   *string `gorm:"column:alt_text;size:255" json:"alt_text,omitempty"`
}

// Review is a customer's rating of a product
type Review struct {
	ID        uint      `gorm:"column:review_id;primaryKey" json:"id"`
	ProductID *uint     `gorm:"column:product_id" json:"product_id"`
	UserID    *uint     `gorm:"column:user_id" json:"user_id"`
	Rating    int       `gorm:"column:rating;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   *string   `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Category) TableName() string       { return "categories" }
func (Brand) TableName() string          { return "brands" }
func (Product) TableName() string        { return "products" }
func (ProductVariant) TableName() string { return "product_variants" }
func (ProductImage) TableName() string   { return "product_images" }
func (Review) TableName() string         { return "reviews" }

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentCategoryID == nil
}

func (v *ProductVariant) IsInStock() bool {
	return v.StockQuantity > 0
}

// ValidRating reports whether rating fits the reviews check constraint
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
