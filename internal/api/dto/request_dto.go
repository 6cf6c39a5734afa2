package dto

import (
	"encoding/json"
	"time"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// SubmitRequestRequest payload. The payload member stays raw until the
// service type is known so it can be decoded into the right variant.
type SubmitRequestRequest struct {
	ServiceType  domain.ServiceType `json:"service_type"`
	Title        string             `json:"title"`
	Description  *string            `json:"description"`
	Payload      json.RawMessage    `json:"payload"`
	CitizenName  *string            `json:"citizen_name"`
	CitizenPhone *string            `json:"citizen_phone"`
}

// SubmitRequestResponse returns the tracking code the citizen keeps.
type SubmitRequestResponse struct {
	Code        string               `json:"code"`
	ServiceType domain.ServiceType   `json:"service_type"`
	Status      domain.RequestStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// RequestDetail is the full tracked view of a request.
type RequestDetail struct {
	Code         string                `json:"code"`
	ServiceType  domain.ServiceType    `json:"service_type"`
	Title        string                `json:"title"`
	Description  *string               `json:"description"`
	Status       domain.RequestStatus  `json:"status"`
	Payload      domain.RequestPayload `json:"payload"`
	CitizenName  *string               `json:"citizen_name,omitempty"`
	CitizenPhone *string               `json:"citizen_phone,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// UpdateRequestStatusRequest payload.
type UpdateRequestStatusRequest struct {
	Status domain.RequestStatus `json:"status"`
}

// NewRequestDetail maps a domain request into its API shape.
func NewRequestDetail(request *domain.Request) RequestDetail {
	return RequestDetail{
		Code:         request.Code,
		ServiceType:  request.ServiceType,
		Title:        request.Title,
		Description:  request.Description,
		Status:       request.Status,
		Payload:      request.Payload,
		CitizenName:  request.CitizenName,
		CitizenPhone: request.CitizenPhone,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
}
