package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/gholaman/municipal-portal/internal/domain"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	if err != nil {
		t.Fatalf("schema compilation failed: %v", err)
	}
	return v
}

func assertValidationFailed(t *testing.T, err error) {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestValidateSubmission(t *testing.T) {
	v := newValidator(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		serviceType domain.ServiceType
		doc         string
		wantErr     bool
	}{
		{
			"valid complaint",
			domain.ServiceComplaint137,
			`{"title":"broken streetlight","description":"the light on the corner has been out for a week","payload":{"category":"lighting","phone":"09123456789"}}`,
			false,
		},
		{
			"complaint missing category",
			domain.ServiceComplaint137,
			`{"title":"broken streetlight","description":"the light on the corner has been out for a week","payload":{}}`,
			true,
		},
		{
			"complaint description too short",
			domain.ServiceComplaint137,
			`{"title":"broken streetlight","description":"too short","payload":{"category":"lighting"}}`,
			true,
		},
		{
			"complaint bad phone",
			domain.ServiceComplaint137,
			`{"title":"broken streetlight","description":"the light on the corner has been out for a week","payload":{"category":"lighting","phone":"12345"}}`,
			true,
		},
		{
			"valid building permit",
			domain.ServiceBuildingPermit,
			`{"title":"two story extension","payload":{"owner_name":"Sara Ahmadi","address":"12 Enghelab Ave, District 6","permit_type":"residential","phone":"09123456789"}}`,
			false,
		},
		{
			"building permit missing owner",
			domain.ServiceBuildingPermit,
			`{"title":"two story extension","payload":{"address":"12 Enghelab Ave, District 6","permit_type":"residential","phone":"09123456789"}}`,
			true,
		},
		{
			"valid payment",
			domain.ServicePayment,
			`{"title":"toll payment","payload":{"file_number":"F-2210","payment_type":"toll","amount":250000}}`,
			false,
		},
		{
			"payment amount below minimum",
			domain.ServicePayment,
			`{"title":"toll payment","payload":{"file_number":"F-2210","payment_type":"toll","amount":500}}`,
			true,
		},
		{
			"payment fractional amount",
			domain.ServicePayment,
			`{"title":"toll payment","payload":{"file_number":"F-2210","payment_type":"toll","amount":1000.5}}`,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSubmission(ctx, tt.serviceType, []byte(tt.doc))
			if tt.wantErr {
				assertValidationFailed(t, err)
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateSubmissionUnknownServiceType(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateSubmission(context.Background(), "passport", []byte(`{}`))
	assertValidationFailed(t, err)
}

func TestValidateNewsInput(t *testing.T) {
	v := newValidator(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"full create body", `{"title":"City update","slug":"city-update","status":"published","content":"..."}`, false},
		{"partial update", `{"title":"City update, revised"}`, false},
		{"explicit null publish time", `{"published_at":null}`, false},
		{"bad slug characters", `{"title":"City update","slug":"City Update!"}`, true},
		{"unknown status", `{"status":"archived"}`, true},
		{"non https image url", `{"image_url":"ftp://example.com/x.png"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateNewsInput(ctx, []byte(tt.doc))
			if tt.wantErr {
				assertValidationFailed(t, err)
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
