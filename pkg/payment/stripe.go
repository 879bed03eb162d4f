package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

type StripeService struct {
	secretKey  string
	successURL string
	cancelURL  string
}

func NewStripeService(secretKey, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateSubscriptionCheckoutSession, subscription modunda hosted checkout
// oturumu açar. Webhook tarafının kullanıcıyı ve kotayı çözebilmesi için
// user_id ve quota_limit metadata'ya yazılır.
func (s *StripeService) CreateSubscriptionCheckoutSession(userEmail string, userID uint, priceID string, quotaLimit int) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		CustomerEmail: &userEmail,
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(fmt.Sprintf("%d", userID)),
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
	}

	params.AddMetadata("user_id", fmt.Sprintf("%d", userID))
	params.AddMetadata("quota_limit", fmt.Sprintf("%d", quotaLimit))

	return session.New(params)
}
