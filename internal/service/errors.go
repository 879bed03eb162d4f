package service

import "errors"

// Hata taksonomisi. Handler katmanı bu sentinel'leri HTTP statülerine ve
// JSON reason code'larına çevirir.
var (
	ErrInvalidInput             = errors.New("at least one image and a prompt are required")
	ErrSubscriptionRequired     = errors.New("an active subscription is required")
	ErrQuotaExceeded            = errors.New("generation quota exceeded for the current period")
	ErrNotFound                 = errors.New("not found")
	ErrUploadFailed             = errors.New("failed to upload image to storage")
	ErrGenerationFailed         = errors.New("image generation failed")
	ErrUnexpectedUpstreamFormat = errors.New("unexpected response format from the image model")
)
