package repository

import (
	"errors"
	"time"

	"github.com/sefazor/pixelmuse-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
	}
}

// GetByUserID, kayıt yoksa (nil, nil) döner; quota gate bu durumu
// "abonelik yok" olarak değerlendirir.
func (r *SubscriptionRepository) GetByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) GetByCustomerID(customerID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("stripe_customer_id = ?", customerID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert, user_id üzerinde on-conflict günceller. Webhook teslimatları
// at-least-once olduğu için aynı event'in tekrarı yeni satır üretmez.
func (r *SubscriptionRepository) Upsert(sub *models.Subscription) error {
	sub.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"quota_limit",
			"quota_used",
			"stripe_customer_id",
			"stripe_subscription_id",
			"stripe_price_id",
			"current_period_start",
			"current_period_end",
			"updated_at",
		}),
	}).Create(sub).Error
}

func (r *SubscriptionRepository) UpdateStatus(userID uint, status string) error {
	return r.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// IncrementQuotaUsed, sayaç artışını sunucu tarafında tek UPDATE ile yapar.
// Read-modify-write olmadığı için eşzamanlı üretimlerde artış kaybolmaz.
func (r *SubscriptionRepository) IncrementQuotaUsed(userID uint) error {
	result := r.db.Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"quota_used": gorm.Expr("quota_used + ?", 1),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
