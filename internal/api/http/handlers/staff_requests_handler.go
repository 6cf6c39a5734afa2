package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/api/dto"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/service"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// StaffRequestsHandler manages the staff dashboard endpoints.
type StaffRequestsHandler struct {
	service *service.RequestService
}

// NewStaffRequestsHandler constructs handler.
func NewStaffRequestsHandler(requestService *service.RequestService) *StaffRequestsHandler {
	return &StaffRequestsHandler{service: requestService}
}

// List GET /staff/requests?status=&limit=.
func (h *StaffRequestsHandler) List(c *fiber.Ctx) error {
	var status *domain.RequestStatus
	if raw := c.Query("status"); raw != "" {
		parsed := domain.RequestStatus(raw)
		if !parsed.Valid() {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		status = &parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apperrors.NewValidationError("invalid limit", map[string]any{"limit": raw})
		}
		limit = parsed
	}

	requests, err := h.service.ListRequests(c.UserContext(), status, limit)
	if err != nil {
		return err
	}

	items := make([]dto.RequestDetail, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewRequestDetail(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Stats GET /staff/requests/stats.
func (h *StaffRequestsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.RequestStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// UpdateStatus PATCH /staff/requests/:code/status.
func (h *StaffRequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateRequestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.UpdateRequestStatus(c.UserContext(), c.Params("code"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestDetail(request)})
}
