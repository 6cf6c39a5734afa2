package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/api/dto"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/service"
	"github.com/gholaman/municipal-portal/internal/validation"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// RequestsHandler manages the public citizen endpoints.
type RequestsHandler struct {
	service   *service.RequestService
	validator *validation.Validator
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService, validator *validation.Validator) *RequestsHandler {
	return &RequestsHandler{service: requestService, validator: validator}
}

// Submit POST /requests.
func (h *RequestsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.ServiceType.Valid() {
		return apperrors.NewValidationError("unknown service type", map[string]any{
			"service_type": string(req.ServiceType),
		})
	}

	// Schema check runs against the raw body so field-level messages
	// reference what the citizen actually sent.
	if err := h.validator.ValidateSubmission(c.UserContext(), req.ServiceType, c.Body()); err != nil {
		return err
	}

	payload, err := domain.DecodePayload(req.ServiceType, req.Payload)
	if err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"payload": err.Error()})
	}

	request, err := h.service.SubmitRequest(c.UserContext(), service.SubmitRequestInput{
		ServiceType:  req.ServiceType,
		Title:        req.Title,
		Description:  req.Description,
		Payload:      payload,
		CitizenName:  req.CitizenName,
		CitizenPhone: req.CitizenPhone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SubmitRequestResponse{
		Code:        request.Code,
		ServiceType: request.ServiceType,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
	}})
}

// Track GET /requests/:code.
func (h *RequestsHandler) Track(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return apperrors.NewValidationError("tracking code required", nil)
	}

	request, err := h.service.TrackRequest(c.UserContext(), code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestDetail(request)})
}
