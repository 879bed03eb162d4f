package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/internal/service"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) GetPlans(c *fiber.Ctx) error {
	plans, err := h.paymentService.GetPlans()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.SuccessResponse(plans, "Plans retrieved successfully"))
}

func (h *PaymentHandler) GetSubscriptionStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("unauthenticated", "User not authenticated"))
	}

	status, err := h.paymentService.GetSubscriptionStatus(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.SuccessResponse(status, "Subscription status retrieved successfully"))
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("unauthenticated", "User not authenticated"))
	}

	planCode := c.Params("planCode")
	if planCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_input", "Plan code is required"))
	}

	session, err := h.paymentService.CreateCheckoutSession(userID, planCode)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.SuccessResponse(session, "Checkout session created"))
}

// HandleStripeWebhook, imza doğrulaması geçmeyen payload'ları işlemeden
// reddeder. İmza geçerliyse dispatch hatası 500 döner ki Stripe tekrar
// denesin; yazmalar upsert olduğu için tekrar güvenlidir.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_signature", "Webhook signature verification failed"))
	}

	if err := h.paymentService.HandleStripeWebhook(&event); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponseWithCode("processing_error", "Webhook processing failed"))
	}

	return c.SendStatus(fiber.StatusOK)
}
