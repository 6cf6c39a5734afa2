package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/api/dto"
	"github.com/gholaman/municipal-portal/internal/service"
	"github.com/gholaman/municipal-portal/internal/validation"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// AdminNewsHandler manages the admin news endpoints. Authorization is
// enforced inside the service; this layer only shapes requests and responses.
type AdminNewsHandler struct {
	service   *service.NewsService
	validator *validation.Validator
}

// NewAdminNewsHandler constructs handler.
func NewAdminNewsHandler(newsService *service.NewsService, validator *validation.Validator) *AdminNewsHandler {
	return &AdminNewsHandler{service: newsService, validator: validator}
}

// List GET /admin/news.
func (h *AdminNewsHandler) List(c *fiber.Ctx) error {
	items, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	response := make([]dto.NewsItemResponse, 0, len(items))
	for i := range items {
		response = append(response, dto.NewNewsItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": response})
}

// Get GET /admin/news/:id.
func (h *AdminNewsHandler) Get(c *fiber.Ctx) error {
	id, err := parseNewsID(c)
	if err != nil {
		return err
	}
	item, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsItemResponse(item)})
}

// Create POST /admin/news.
func (h *AdminNewsHandler) Create(c *fiber.Ctx) error {
	input, err := h.parseNewsInput(c)
	if err != nil {
		return err
	}

	item, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNewsItemResponse(item)})
}

// Update PUT /admin/news/:id.
func (h *AdminNewsHandler) Update(c *fiber.Ctx) error {
	id, err := parseNewsID(c)
	if err != nil {
		return err
	}
	input, err := h.parseNewsInput(c)
	if err != nil {
		return err
	}

	item, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsItemResponse(item)})
}

// Delete DELETE /admin/news/:id.
func (h *AdminNewsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseNewsID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *AdminNewsHandler) parseNewsInput(c *fiber.Ctx) (service.NewsInput, error) {
	var req dto.NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return service.NewsInput{}, apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.validator.ValidateNewsInput(c.UserContext(), c.Body()); err != nil {
		return service.NewsInput{}, err
	}

	publishedAt, publishedAtSet, err := req.ParsePublishedAt()
	if err != nil {
		return service.NewsInput{}, apperrors.NewValidationError(err.Error(), nil)
	}

	return service.NewsInput{
		Title:          req.Title,
		Slug:           req.Slug,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		ImageURL:       req.ImageURL,
		Status:         req.Status,
		PublishedAt:    publishedAt,
		PublishedAtSet: publishedAtSet,
	}, nil
}

func parseNewsID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid news id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
