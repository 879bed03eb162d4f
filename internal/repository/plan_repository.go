package repository

import (
	"errors"

	"github.com/sefazor/pixelmuse-backend/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{
		db: db,
	}
}

func (r *PlanRepository) GetAllActive() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ?", true).Order("price asc").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) GetByCode(code string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Where("code = ?", code).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByStripeID, Stripe price veya product kimliğinden planı çözer.
// Bulunamazsa (nil, nil) döner, çağıran taraf varsayılan kotaya düşer.
func (r *PlanRepository) GetByStripeID(priceID, productID string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("stripe_price_id = ? OR stripe_product_id = ?", priceID, productID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
