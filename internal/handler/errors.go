package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/internal/service"
)

// serviceError, servis katmanı sentinel'lerini HTTP statüsüne ve reason
// code'una çevirir.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_input", err.Error()))
	case errors.Is(err, service.ErrSubscriptionRequired):
		return c.Status(fiber.StatusPaymentRequired).JSON(models.ErrorResponseWithCode("subscription_required", err.Error()))
	case errors.Is(err, service.ErrQuotaExceeded):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponseWithCode("quota_exceeded", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponseWithCode("not_found", err.Error()))
	case errors.Is(err, service.ErrUnexpectedUpstreamFormat):
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponseWithCode("unexpected_upstream_format", err.Error()))
	case errors.Is(err, service.ErrUploadFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponseWithCode("upload_failed", err.Error()))
	case errors.Is(err, service.ErrGenerationFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponseWithCode("generation_failed", err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponseWithCode("internal_error", err.Error()))
	}
}

// currentUserID, auth middleware'in koyduğu userID'yi güvenli şekilde okur
func currentUserID(c *fiber.Ctx) (uint, bool) {
	raw := c.Locals("userID")
	if raw == nil {
		return 0, false
	}
	userID, ok := raw.(uint)
	return userID, ok
}
