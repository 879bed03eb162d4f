package service

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

// Plan tablosunda eşleşme bulunamazsa kullanılan kota.
const defaultQuotaLimit = 50

type PaymentService struct {
	stripeService    *payment.StripeService
	subscriptionRepo SubscriptionStore
	planRepo         PlanStore
	userRepo         UserStore
	emailService     Mailer
	logger           *zap.Logger
}

func NewPaymentService(
	stripeService *payment.StripeService,
	subscriptionRepo SubscriptionStore,
	planRepo PlanStore,
	userRepo UserStore,
	emailService Mailer,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		stripeService:    stripeService,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

func (s *PaymentService) GetPlans() ([]models.Plan, error) {
	return s.planRepo.GetAllActive()
}

func (s *PaymentService) GetSubscriptionStatus(userID uint) (*models.SubscriptionStatusResponse, error) {
	sub, err := s.subscriptionRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &models.SubscriptionStatusResponse{Status: "none"}, nil
	}

	remaining := 0
	if sub.QuotaLimit > 0 {
		remaining = sub.QuotaLimit - sub.QuotaUsed
		if remaining < 0 {
			remaining = 0
		}
	}

	return &models.SubscriptionStatusResponse{
		Status:         sub.Status,
		QuotaLimit:     sub.QuotaLimit,
		QuotaUsed:      sub.QuotaUsed,
		QuotaRemaining: remaining,
		PeriodEnd:      sub.CurrentPeriodEnd,
	}, nil
}

func (s *PaymentService) CreateCheckoutSession(userID uint, planCode string) (*models.CheckoutSession, error) {
	plan, err := s.planRepo.GetByCode(planCode)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	session, err := s.stripeService.CreateSubscriptionCheckoutSession(
		user.Email,
		userID,
		plan.StripePriceID,
		plan.MonthlyQuota,
	)
	if err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// HandleStripeWebhook, imzası doğrulanmış event'i işler. Tüm yazmalar
// upsert olduğu için aynı event'in tekrar teslim edilmesi güvenlidir.
// Eşleşen kullanıcı bulunamayan event'ler yazma yapılmadan geçilir ki tek
// bozuk event webhook teslimatını bloklamasın.
func (s *PaymentService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return s.handleCheckoutCompleted(&session)

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.handleSubscriptionUpdated(&sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.handleSubscriptionDeleted(&sub)
	}

	// Diğer event tipleri side effect olmadan ack'lenir
	return nil
}

func (s *PaymentService) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	userID := resolveUserID(session.Metadata, session.ClientReferenceID)
	if userID == 0 {
		s.logger.Warn("checkout completed without a resolvable user, skipping",
			zap.String("session_id", session.ID),
		)
		return nil
	}

	quotaLimit, _ := strconv.Atoi(session.Metadata["quota_limit"])

	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}

	sub := &models.Subscription{
		UserID:           userID,
		Status:           models.SubscriptionStatusActive,
		QuotaLimit:       quotaLimit,
		QuotaUsed:        0,
		StripeCustomerID: customerID,
	}
	if err := s.subscriptionRepo.Upsert(sub); err != nil {
		return err
	}

	// Aktivasyon emaili best-effort
	if user, err := s.userRepo.GetByID(userID); err == nil {
		go s.emailService.SendSubscriptionActivatedEmail(user.Email, user.FullName, quotaLimit)
	}

	return nil
}

func (s *PaymentService) handleSubscriptionUpdated(stripeSub *stripe.Subscription) error {
	customerID := ""
	if stripeSub.Customer != nil {
		customerID = stripeSub.Customer.ID
	}

	userID := resolveUserID(stripeSub.Metadata, "")
	if userID == 0 {
		existing, err := s.subscriptionRepo.GetByCustomerID(customerID)
		if err != nil {
			return err
		}
		if existing == nil {
			s.logger.Warn("subscription event for unknown customer, skipping",
				zap.String("stripe_customer_id", customerID),
				zap.String("stripe_subscription_id", stripeSub.ID),
			)
			return nil
		}
		userID = existing.UserID
	}

	priceID, productID := "", ""
	if stripeSub.Items != nil && len(stripeSub.Items.Data) > 0 && stripeSub.Items.Data[0].Price != nil {
		priceID = stripeSub.Items.Data[0].Price.ID
		if stripeSub.Items.Data[0].Price.Product != nil {
			productID = stripeSub.Items.Data[0].Price.Product.ID
		}
	}

	quotaLimit := defaultQuotaLimit
	plan, err := s.planRepo.GetByStripeID(priceID, productID)
	if err != nil {
		return err
	}
	if plan != nil {
		quotaLimit = plan.MonthlyQuota
	} else {
		s.logger.Warn("no plan matches stripe identifiers, using default quota",
			zap.String("stripe_price_id", priceID),
			zap.String("stripe_product_id", productID),
		)
	}

	// Dönem başlangıcında quota_used sıfırlanır; bu bilinçli bir
	// politikadır, her yenilemede sayaç baştan başlar.
	sub := &models.Subscription{
		UserID:               userID,
		Status:               string(stripeSub.Status),
		QuotaLimit:           quotaLimit,
		QuotaUsed:            0,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: stripeSub.ID,
		StripePriceID:        priceID,
		CurrentPeriodStart:   unixToTime(stripeSub.CurrentPeriodStart),
		CurrentPeriodEnd:     unixToTime(stripeSub.CurrentPeriodEnd),
	}
	return s.subscriptionRepo.Upsert(sub)
}

func (s *PaymentService) handleSubscriptionDeleted(stripeSub *stripe.Subscription) error {
	customerID := ""
	if stripeSub.Customer != nil {
		customerID = stripeSub.Customer.ID
	}

	existing, err := s.subscriptionRepo.GetByCustomerID(customerID)
	if err != nil {
		return err
	}
	if existing == nil {
		s.logger.Warn("subscription deleted for unknown customer, skipping",
			zap.String("stripe_customer_id", customerID),
		)
		return nil
	}

	// Kota alanlarına dokunulmaz, sadece statü değişir
	return s.subscriptionRepo.UpdateStatus(existing.UserID, models.SubscriptionStatusCanceled)
}

func resolveUserID(metadata map[string]string, clientReferenceID string) uint {
	raw := metadata["user_id"]
	if raw == "" {
		raw = clientReferenceID
	}
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func unixToTime(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0)
	return &t
}
