package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/service"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// listApp mounts List behind a minimal error translator so the domain
// error's HTTP status and code are observable in the response.
func listApp(h *StaffRequestsHandler) *fiber.App {
	app := fiber.New()
	app.Get("/staff/requests", func(c *fiber.Ctx) error {
		if err := h.List(c); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		}
		return nil
	})
	return app
}

func TestListRejectsMalformedQuery(t *testing.T) {
	// The service is never reached: both query checks come first.
	h := NewStaffRequestsHandler(service.NewRequestService(service.RequestDependencies{}))
	app := listApp(h)

	tests := []struct {
		name string
		uri  string
	}{
		{"malformed limit", "/staff/requests?limit=abc"},
		{"negative limit", "/staff/requests?limit=-5"},
		{"unknown status", "/staff/requests?status=archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.uri, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}
