package models

import "time"

// Plan, Stripe price/product kimliklerini aylık üretim kotasına bağlar.
// Webhook tarafı kota limitini bu tablodan çözer, product id string'i
// üzerinden tahmin yapmaz.
type Plan struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Code            string    `json:"code" gorm:"uniqueIndex;not null"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description"`
	Price           float64   `json:"price" gorm:"not null"`
	MonthlyQuota    int       `json:"monthly_quota" gorm:"not null"`
	StripeProductID string    `json:"stripe_product_id"`
	StripePriceID   string    `json:"stripe_price_id"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
