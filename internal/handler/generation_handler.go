package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/internal/service"
)

type GenerationHandler struct {
	generationService *service.GenerationService
}

func NewGenerationHandler(generationService *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

// Generate, multipart form'dan bir veya daha fazla "images" dosyası ve
// "prompt" alanı bekler.
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("unauthenticated", "User not authenticated"))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_input", "Invalid multipart form"))
	}

	files := form.File["images"]
	prompt := strings.TrimSpace(c.FormValue("prompt"))

	if len(files) == 0 || prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_input", "At least one image and a prompt are required"))
	}

	result, err := h.generationService.Generate(userID, files, prompt)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.SuccessResponse(result, "Image generated successfully"))
}
