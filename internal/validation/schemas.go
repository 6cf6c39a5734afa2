package validation

import "github.com/gholaman/municipal-portal/internal/domain"

// Submission schemas mirror the portal's public service forms. Field
// limits match what the forms enforce client-side; the server check here
// is the authoritative one.

const complaintSchema = `{
	"type": "object",
	"required": ["title", "description", "payload"],
	"properties": {
		"title": {"type": "string", "minLength": 3, "maxLength": 200},
		"description": {"type": "string", "minLength": 10, "maxLength": 2000},
		"citizen_name": {"type": "string", "maxLength": 100},
		"citizen_phone": {"type": "string", "pattern": "^09[0-9]{9}$"},
		"payload": {
			"type": "object",
			"required": ["category"],
			"properties": {
				"category": {"type": "string", "minLength": 1},
				"latitude": {"type": "string", "pattern": "^-?[0-9]+(\\.[0-9]+)?$"},
				"longitude": {"type": "string", "pattern": "^-?[0-9]+(\\.[0-9]+)?$"},
				"phone": {"type": "string", "pattern": "^09[0-9]{9}$"}
			}
		}
	}
}`

const buildingPermitSchema = `{
	"type": "object",
	"required": ["title", "payload"],
	"properties": {
		"title": {"type": "string", "minLength": 3, "maxLength": 200},
		"description": {"type": "string", "maxLength": 2000},
		"citizen_name": {"type": "string", "maxLength": 100},
		"citizen_phone": {"type": "string", "pattern": "^09[0-9]{9}$"},
		"payload": {
			"type": "object",
			"required": ["owner_name", "address", "permit_type", "phone"],
			"properties": {
				"owner_name": {"type": "string", "minLength": 3, "maxLength": 100},
				"address": {"type": "string", "minLength": 10, "maxLength": 500},
				"permit_type": {"type": "string", "minLength": 1},
				"description": {"type": "string", "maxLength": 1000},
				"phone": {"type": "string", "pattern": "^09[0-9]{9}$"}
			}
		}
	}
}`

const paymentSchema = `{
	"type": "object",
	"required": ["title", "payload"],
	"properties": {
		"title": {"type": "string", "minLength": 3, "maxLength": 200},
		"description": {"type": "string", "maxLength": 2000},
		"citizen_name": {"type": "string", "maxLength": 100},
		"citizen_phone": {"type": "string", "pattern": "^09[0-9]{9}$"},
		"payload": {
			"type": "object",
			"required": ["file_number", "payment_type", "amount"],
			"properties": {
				"file_number": {"type": "string", "minLength": 1, "maxLength": 50},
				"payment_type": {"type": "string", "minLength": 1},
				"amount": {"type": "integer", "minimum": 1000, "maximum": 100000000000}
			}
		}
	}
}`

// The news schema carries no required list: it validates both full
// create bodies and partial updates. Create-time presence of title and
// slug is enforced by the news service.
const newsSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 3, "maxLength": 200},
		"slug": {"type": "string", "minLength": 3, "maxLength": 100, "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"},
		"excerpt": {"type": "string", "maxLength": 500},
		"content": {"type": "string"},
		"image_url": {"type": "string", "pattern": "^https?://"},
		"status": {"type": "string", "enum": ["draft", "published"]},
		"published_at": {"type": ["string", "null"]}
	}
}`

var submissionSchemas = map[domain.ServiceType]string{
	domain.ServiceComplaint137:   complaintSchema,
	domain.ServiceBuildingPermit: buildingPermitSchema,
	domain.ServicePayment:        paymentSchema,
}
