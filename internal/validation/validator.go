// Package validation checks inbound submission and news documents against
// per-service JSON schemas before any store write happens.
package validation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"

	"github.com/gholaman/municipal-portal/internal/domain"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// Validator holds the compiled schemas, one per service type plus the
// news-input schema. Compilation happens once at startup.
type Validator struct {
	submissions map[domain.ServiceType]*jsonschema.Schema
	news        *jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	submissions := make(map[domain.ServiceType]*jsonschema.Schema, len(submissionSchemas))
	for serviceType, raw := range submissionSchemas {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(raw), rs); err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", serviceType, err)
		}
		submissions[serviceType] = rs
	}

	news := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(newsSchema), news); err != nil {
		return nil, fmt.Errorf("compile news schema: %w", err)
	}

	return &Validator{submissions: submissions, news: news}, nil
}

// ValidateSubmission checks a request-submission document against the
// schema for its service type.
func (v *Validator) ValidateSubmission(ctx context.Context, serviceType domain.ServiceType, doc []byte) error {
	schema, ok := v.submissions[serviceType]
	if !ok {
		return apperrors.NewValidationError("unknown service type", map[string]any{
			"service_type": string(serviceType),
		})
	}
	return v.validate(ctx, schema, doc, "invalid submission")
}

// ValidateNewsInput checks a news create/update document.
func (v *Validator) ValidateNewsInput(ctx context.Context, doc []byte) error {
	return v.validate(ctx, v.news, doc, "invalid news input")
}

func (v *Validator) validate(ctx context.Context, schema *jsonschema.Schema, doc []byte, message string) error {
	keyErrs, err := schema.ValidateBytes(ctx, doc)
	if err != nil {
		return apperrors.NewValidationError(message, map[string]any{"document": err.Error()})
	}
	if len(keyErrs) == 0 {
		return nil
	}
	details := make(map[string]any, len(keyErrs))
	for _, keyErr := range keyErrs {
		details[keyErr.PropertyPath] = keyErr.Message
	}
	return apperrors.NewValidationError(message, details)
}
