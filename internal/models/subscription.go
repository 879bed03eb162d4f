package models

import (
	"time"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription, kullanıcı başına tek satır (user_id üzerinde upsert edilir).
type Subscription struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	UserID               uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Status               string     `json:"status" gorm:"not null;default:''"`
	QuotaLimit           int        `json:"quota_limit" gorm:"not null;default:0"`
	QuotaUsed            int        `json:"quota_used" gorm:"not null;default:0"`
	StripeCustomerID     string     `json:"stripe_customer_id" gorm:"index"`
	StripeSubscriptionID string     `json:"stripe_subscription_id"`
	StripePriceID        string     `json:"stripe_price_id"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type SubscriptionStatusResponse struct {
	Status         string     `json:"status"`
	QuotaLimit     int        `json:"quota_limit"`
	QuotaUsed      int        `json:"quota_used"`
	QuotaRemaining int        `json:"quota_remaining"`
	PeriodEnd      *time.Time `json:"current_period_end,omitempty"`
}
