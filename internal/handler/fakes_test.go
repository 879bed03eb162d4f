package handler

import (
	"github.com/sefazor/pixelmuse-backend/internal/models"
)

// Webhook handler testleri imza doğrulama katmanını hedefler; store'lar
// no-op yeterli.

type nopSubscriptionStore struct{}

func (nopSubscriptionStore) GetByUserID(userID uint) (*models.Subscription, error) {
	return nil, nil
}

func (nopSubscriptionStore) GetByCustomerID(customerID string) (*models.Subscription, error) {
	return nil, nil
}

func (nopSubscriptionStore) Upsert(sub *models.Subscription) error        { return nil }
func (nopSubscriptionStore) UpdateStatus(userID uint, status string) error { return nil }
func (nopSubscriptionStore) IncrementQuotaUsed(userID uint) error          { return nil }

type nopProjectStore struct{}

func (nopProjectStore) Create(project *models.Project) error { return nil }
func (nopProjectStore) GetByUserID(userID uint) ([]models.Project, error) {
	return nil, nil
}
func (nopProjectStore) GetByIDAndUserID(id uint, userID uint) (*models.Project, error) {
	return nil, nil
}
func (nopProjectStore) Delete(id uint, userID uint) error { return nil }

type nopPlanStore struct{}

func (nopPlanStore) GetAllActive() ([]models.Plan, error)          { return nil, nil }
func (nopPlanStore) GetByCode(code string) (*models.Plan, error)   { return nil, nil }
func (nopPlanStore) GetByStripeID(p, q string) (*models.Plan, error) { return nil, nil }

type nopUserStore struct{}

func (nopUserStore) Create(user *models.User) error              { return nil }
func (nopUserStore) GetByID(id uint) (*models.User, error)       { return &models.User{ID: id}, nil }
func (nopUserStore) GetByEmail(e string) (*models.User, error)   { return nil, nil }
func (nopUserStore) EmailExists(email string) (bool, error)      { return false, nil }

type nopMailer struct{}

func (nopMailer) SendWelcomeEmail(email, fullName string) error { return nil }
func (nopMailer) SendSubscriptionActivatedEmail(email, fullName string, quotaLimit int) error {
	return nil
}
