package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ServiceType enumerates the municipal services citizens can request.
type ServiceType string

const (
	ServiceComplaint137   ServiceType = "complaint_137"
	ServiceBuildingPermit ServiceType = "building_permit"
	ServicePayment        ServiceType = "payment"
)

// KnownServiceTypes lists every service the portal accepts submissions for.
var KnownServiceTypes = []ServiceType{
	ServiceComplaint137,
	ServiceBuildingPermit,
	ServicePayment,
}

// Valid reports whether the service type is part of the closed enumeration.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceComplaint137, ServiceBuildingPermit, ServicePayment:
		return true
	}
	return false
}

// RequestStatus enumerates lifecycle states for citizen requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusInReview  RequestStatus = "in-review"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusRejected  RequestStatus = "rejected"
)

// Valid reports whether the status is one of the known states.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInReview, RequestStatusCompleted, RequestStatusRejected:
		return true
	}
	return false
}

// ComplaintDetails carries the service-specific fields of a 137 complaint.
type ComplaintDetails struct {
	Category  string `json:"category"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// BuildingPermitDetails carries the fields of a building permit application.
type BuildingPermitDetails struct {
	OwnerName   string `json:"owner_name"`
	Address     string `json:"address"`
	PermitType  string `json:"permit_type"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone"`
}

// PaymentDetails carries the fields of a municipal tax payment.
type PaymentDetails struct {
	FileNumber  string `json:"file_number"`
	PaymentType string `json:"payment_type"`
	Amount      int64  `json:"amount"`
}

// RequestPayload is a tagged union of per-service detail variants.
// Exactly one variant is populated, matching the request's ServiceType.
type RequestPayload struct {
	Complaint      *ComplaintDetails
	BuildingPermit *BuildingPermitDetails
	Payment        *PaymentDetails
}

// MarshalJSON serializes whichever variant is set. An empty payload encodes as null.
func (p RequestPayload) MarshalJSON() ([]byte, error) {
	switch {
	case p.Complaint != nil:
		return json.Marshal(p.Complaint)
	case p.BuildingPermit != nil:
		return json.Marshal(p.BuildingPermit)
	case p.Payment != nil:
		return json.Marshal(p.Payment)
	}
	return []byte("null"), nil
}

// DecodePayload parses raw payload bytes into the variant matching serviceType.
func DecodePayload(serviceType ServiceType, raw []byte) (RequestPayload, error) {
	var payload RequestPayload
	if len(raw) == 0 || string(raw) == "null" {
		return payload, nil
	}
	switch serviceType {
	case ServiceComplaint137:
		var details ComplaintDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return payload, fmt.Errorf("decode complaint payload: %w", err)
		}
		payload.Complaint = &details
	case ServiceBuildingPermit:
		var details BuildingPermitDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return payload, fmt.Errorf("decode building permit payload: %w", err)
		}
		payload.BuildingPermit = &details
	case ServicePayment:
		var details PaymentDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return payload, fmt.Errorf("decode payment payload: %w", err)
		}
		payload.Payment = &details
	default:
		return payload, fmt.Errorf("unknown service type %q", serviceType)
	}
	return payload, nil
}

// Request is the aggregate for citizen service requests.
// Code is assigned once at creation and never changes afterwards.
type Request struct {
	ID           string
	Code         string
	ServiceType  ServiceType
	Title        string
	Description  *string
	Status       RequestStatus
	Payload      RequestPayload
	CitizenName  *string
	CitizenPhone *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequestStats aggregates per-status counts for the staff dashboard.
type RequestStats struct {
	All       int64 `json:"all"`
	Pending   int64 `json:"pending"`
	InReview  int64 `json:"in_review"`
	Completed int64 `json:"completed"`
	Rejected  int64 `json:"rejected"`
}
