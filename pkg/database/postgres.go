package database

import (
	"log"
	"os"

	"github.com/sefazor/pixelmuse-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

// SeedPlans, plan tablosu boşsa iki varsayılan planı ekler. Stripe
// kimlikleri env'den gelir, böylece test/live ortamları ayrışır.
func SeedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.Plan{
		{
			Code:            "basic",
			Name:            "Basic",
			Description:     "50 generations per month",
			Price:           9.99,
			MonthlyQuota:    50,
			StripeProductID: os.Getenv("STRIPE_BASIC_PRODUCT_ID"),
			StripePriceID:   os.Getenv("STRIPE_BASIC_PRICE_ID"),
			IsActive:        true,
		},
		{
			Code:            "pro",
			Name:            "Pro",
			Description:     "200 generations per month",
			Price:           29.99,
			MonthlyQuota:    200,
			StripeProductID: os.Getenv("STRIPE_PRO_PRODUCT_ID"),
			StripePriceID:   os.Getenv("STRIPE_PRO_PRICE_ID"),
			IsActive:        true,
		},
	}

	return db.Create(&plans).Error
}
