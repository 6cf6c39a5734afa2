package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/gholaman/municipal-portal/internal/auth"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/events"
	"github.com/gholaman/municipal-portal/internal/persistence"
	"github.com/gholaman/municipal-portal/internal/repository"
	"github.com/gholaman/municipal-portal/internal/tracking"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// RequestService coordinates the citizen-request lifecycle.
type RequestService struct {
	requests   repository.RequestRepository
	generator  *tracking.Generator
	guard      *auth.Guard
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	Generator   *tracking.Generator
	Guard       *auth.Guard
	Cache       *persistence.Redis
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// SubmitRequestInput describes a validated citizen submission.
type SubmitRequestInput struct {
	ServiceType  domain.ServiceType
	Title        string
	Description  *string
	Payload      domain.RequestPayload
	CitizenName  *string
	CitizenPhone *string
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		generator:  deps.Generator,
		guard:      deps.Guard,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// SubmitRequest assigns a tracking code and persists the submission.
// Schema validation has already happened at the transport boundary; a
// store failure here propagates because the write carries user intent.
func (s *RequestService) SubmitRequest(ctx context.Context, input SubmitRequestInput) (*domain.Request, error) {
	if !input.ServiceType.Valid() {
		return nil, apperrors.NewValidationError("unknown service type", map[string]any{
			"service_type": string(input.ServiceType),
		})
	}

	request := &domain.Request{
		Code:         s.generator.Generate(input.ServiceType),
		ServiceType:  input.ServiceType,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Status:       domain.RequestStatusPending,
		Payload:      input.Payload,
		CitizenName:  input.CitizenName,
		CitizenPhone: input.CitizenPhone,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.NewStoreError("create request", err)
	}

	s.cache.InvalidateRequestStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventRequestCreated,
		Subject: request.Code,
		Actor:   events.Actor{Type: events.ActorCitizen},
		Payload: events.RequestCreatedPayload{
			ServiceType: request.ServiceType,
			Status:      request.Status,
			Title:       request.Title,
		},
	})
	return request, nil
}

// TrackRequest looks up a request by its tracking code. Public: citizens
// only need the code, no identity.
func (s *RequestService) TrackRequest(ctx context.Context, code string) (*domain.Request, error) {
	request, err := s.requests.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"code": code})
		}
		return nil, apperrors.NewStoreError("get request by code", err)
	}
	return request, nil
}

// ListRequests returns recent requests for the staff dashboard, optionally
// filtered by status. A store failure degrades to an empty list so the
// dashboard still renders; the degradation is logged.
func (s *RequestService) ListRequests(ctx context.Context, status *domain.RequestStatus, limit int) ([]domain.Request, error) {
	if _, err := s.guard.RequireEmployee(ctx); err != nil {
		return nil, err
	}

	limit = clampLimit(limit)

	var requests []domain.Request
	var err error
	if status != nil {
		requests, err = s.requests.ListByStatus(ctx, *status, limit)
	} else {
		requests, err = s.requests.ListRecent(ctx, limit)
	}
	if err != nil {
		s.logger.Warn("request listing degraded to empty result", zap.Error(err))
		return []domain.Request{}, nil
	}
	return requests, nil
}

// RequestStats returns per-status counts for the dashboard, served from
// the redis cache when fresh. Count failures degrade to zeroes with a log.
func (s *RequestService) RequestStats(ctx context.Context) (domain.RequestStats, error) {
	if _, err := s.guard.RequireEmployee(ctx); err != nil {
		return domain.RequestStats{}, err
	}

	if stats, ok := s.cache.GetRequestStats(ctx); ok {
		return stats, nil
	}

	stats, err := s.requests.CountByStatus(ctx)
	if err != nil {
		s.logger.Warn("request stats degraded to zeroes", zap.Error(err))
		return domain.RequestStats{}, nil
	}
	s.cache.SetRequestStats(ctx, stats)
	return stats, nil
}

// UpdateRequestStatus moves a request to a new status. The write carries
// staff intent, so store failures propagate.
func (s *RequestService) UpdateRequestStatus(ctx context.Context, code string, newStatus domain.RequestStatus) (*domain.Request, error) {
	session, err := s.guard.RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}

	current, err := s.requests.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"code": code})
		}
		return nil, apperrors.NewStoreError("get request by code", err)
	}

	oldStatus := current.Status
	updated, err := s.requests.UpdateStatus(ctx, code, newStatus)
	if err != nil {
		return nil, apperrors.NewStoreError("update request status", err)
	}

	s.cache.InvalidateRequestStats(ctx)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventRequestStatusChanged,
		Subject: updated.Code,
		Actor:   events.Actor{Type: events.ActorStaff, StaffID: &session.Identity.ID},
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return updated, nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
