package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/api/dto"
	"github.com/gholaman/municipal-portal/internal/service"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// NewsHandler serves the public news feed.
type NewsHandler struct {
	service *service.NewsService
}

// NewNewsHandler constructs handler.
func NewNewsHandler(newsService *service.NewsService) *NewsHandler {
	return &NewsHandler{service: newsService}
}

// List GET /news?page=&page_size=.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "10"))

	items, total, err := h.service.ListPublished(c.UserContext(), page, pageSize)
	if err != nil {
		return err
	}

	response := dto.NewsListResponse{Items: make([]dto.NewsItemResponse, 0, len(items)), Total: total}
	for i := range items {
		response.Items = append(response.Items, dto.NewNewsItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": response})
}

// GetBySlug GET /news/:slug.
func (h *NewsHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return apperrors.NewValidationError("slug required", nil)
	}

	item, err := h.service.GetPublishedBySlug(c.UserContext(), slug)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsItemResponse(item)})
}
