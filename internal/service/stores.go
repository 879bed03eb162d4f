package service

import (
	"encoding/json"

	"github.com/sefazor/pixelmuse-backend/internal/models"
)

// Servisler repository'lere bu arayüzler üzerinden bağlanır; testler
// in-memory fake'lerle çalışır.

type SubscriptionStore interface {
	GetByUserID(userID uint) (*models.Subscription, error)
	GetByCustomerID(customerID string) (*models.Subscription, error)
	Upsert(sub *models.Subscription) error
	UpdateStatus(userID uint, status string) error
	IncrementQuotaUsed(userID uint) error
}

type ProjectStore interface {
	Create(project *models.Project) error
	GetByUserID(userID uint) ([]models.Project, error)
	GetByIDAndUserID(id uint, userID uint) (*models.Project, error)
	Delete(id uint, userID uint) error
}

type PlanStore interface {
	GetAllActive() ([]models.Plan, error)
	GetByCode(code string) (*models.Plan, error)
	GetByStripeID(priceID, productID string) (*models.Plan, error)
}

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
}

// ImageGenerator, uzak img2img modelini temsil eder.
type ImageGenerator interface {
	Generate(imageURL, prompt string) (json.RawMessage, error)
}

// Mailer, transactional email gönderimini temsil eder; tüm gönderimler
// best-effort'tur.
type Mailer interface {
	SendWelcomeEmail(email, fullName string) error
	SendSubscriptionActivatedEmail(email, fullName string, quotaLimit int) error
}
