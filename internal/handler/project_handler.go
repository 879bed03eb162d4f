package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) GetMyProjects(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("unauthenticated", "User not authenticated"))
	}

	projects, err := h.projectService.GetUserProjects(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.SuccessResponse(projects, "Projects retrieved successfully"))
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("unauthenticated", "User not authenticated"))
	}

	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_input", "Invalid project ID"))
	}

	if err := h.projectService.DeleteProject(userID, uint(projectID)); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Project deleted successfully"))
}

func (h *ProjectHandler) GetProjectQRCode(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("unauthenticated", "User not authenticated"))
	}

	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("invalid_input", "Invalid project ID"))
	}

	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}

	png, err := h.projectService.GetProjectQRCode(userID, uint(projectID), size)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
