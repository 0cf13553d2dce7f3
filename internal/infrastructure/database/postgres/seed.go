// internal/infrastructure/database/postgres/seed.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/ecommerce-platform/internal/domain/offer"
	"github.com/your-org/ecommerce-platform/internal/domain/product"
	"github.com/your-org/ecommerce-platform/internal/domain/user"
	"github.com/your-org/ecommerce-platform/internal/pkg/password"
	"gorm.io/gorm"
)

// Demo account created by SeedInitialData
const (
	DemoUserEmail    = "demo@example.com"
	DemoUserPassword = "demo1234"
	WelcomeCoupon    = "WELCOME10"
)

// SeedInitialData inserts a small catalog, a demo user and a welcome coupon.
// Rows that already exist are left untouched.
func (m *Migration) SeedInitialData(ctx context.Context, hasher *password.Hasher) error {
	m.log.Info("🌱 Seeding initial data...")

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := m.seedCatalog(tx); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		if err := m.seedDemoUser(tx, hasher); err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
		if err := m.seedWelcomeOffer(tx); err != nil {
			return fmt.Errorf("failed to seed offer: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.log.Info("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedCatalog(tx *gorm.DB) error {
	apparel, err := findOrCreateCategory(tx, "Apparel", nil)
	if err != nil {
		return err
	}
	shirts, err := findOrCreateCategory(tx, "Shirts", &apparel.ID)
	if err != nil {
		return err
	}

	var brand product.Brand
	err = tx.Where(product.Brand{Name: "House Label"}).
		Attrs(product.Brand{Description: strPtr("In-house basics")}).
		FirstOrCreate(&brand).Error
	if err != nil {
		return err
	}

	var existing product.Product
	err = tx.Where("product_name = ?", "Classic Tee").First(&existing).Error
	if err == nil {
		m.log.Info("⏭️ Catalog already seeded")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	tee := product.Product{
		Name:       "Classic Tee",
		CategoryID: &shirts.ID,
		BrandID:    &brand.ID,
		Status:     true,
		Variants: []product.ProductVariant{
			{Size: strPtr("M"), Color: strPtr("white"), Price: 19.99, StockQuantity: 40},
			{Size: strPtr("L"), Color: strPtr("black"), Price: 21.99, StockQuantity: 25},
		},
		Images: []product.ProductImage{
			{ImageURL: "https://example.com/images/classic-tee.jpg", AltText: strPtr("Classic Tee")},
		},
	}
	if err := tx.Create(&tee).Error; err != nil {
		return err
	}

	m.log.WithField("product_id", tee.ID).Info("✅ Created product: Classic Tee")
	return nil
}

func findOrCreateCategory(tx *gorm.DB, name string, parentID *uint) (*product.Category, error) {
	var category product.Category

	q := tx.Where("category_name = ?", name)
	if parentID == nil {
		q = q.Where("parent_category_id IS NULL")
	} else {
		q = q.Where("parent_category_id = ?", *parentID)
	}

	err := q.First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = product.Category{Name: name, ParentCategoryID: parentID}
	if err := tx.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (m *Migration) seedDemoUser(tx *gorm.DB, hasher *password.Hasher) error {
	var count int64
	if err := tx.Model(&user.User{}).Where("email = ?", DemoUserEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.log.Info("⏭️ Demo user already exists")
		return nil
	}

	hash, err := hasher.Hash(DemoUserPassword)
	if err != nil {
		return err
	}

	demo := user.User{
		FirstName:    "Demo",
		LastName:     "Shopper",
		Email:        user.NormalizeEmail(DemoUserEmail),
		PasswordHash: hash,
		Addresses: []user.ShippingAddress{
			{StreetAddress: "1 Market Street", City: "Pune", Province: strPtr("Maharashtra"), Country: "India"},
		},
	}
	if err := tx.Create(&demo).Error; err != nil {
		return err
	}

	m.log.WithField("email", demo.Email).Info("✅ Created demo user")
	return nil
}

func (m *Migration) seedWelcomeOffer(tx *gorm.DB) error {
	start := time.Now().UTC().Truncate(24 * time.Hour)

	o := offer.Offer{
		CouponCode:    WelcomeCoupon,
		DiscountType:  offer.DiscountTypeRate,
		DiscountValue: 10,
		StartDate:     start,
		EndDate:       start.AddDate(1, 0, 0),
		Description:   strPtr("10% off the first order"),
		Status:        offer.StatusActive,
	}

	result := tx.Where("coupon_code = ?", o.CouponCode).FirstOrCreate(&o)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		m.log.Info("⏭️ Welcome offer already exists")
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
