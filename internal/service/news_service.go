package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/gholaman/municipal-portal/internal/auth"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/events"
	"github.com/gholaman/municipal-portal/internal/repository"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// NewsService covers the public news feed and the admin-managed mutations.
// Every mutating method calls RequireAdmin before touching the store.
type NewsService struct {
	news       repository.NewsRepository
	guard      *auth.Guard
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewsDependencies bundles collaborators for the news service.
type NewsDependencies struct {
	NewsRepo   repository.NewsRepository
	Guard      *auth.Guard
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewsInput describes a create or partial-update payload. Pointer fields
// are "not provided" when nil; PublishedAtSet distinguishes an explicit
// published_at (including an explicit null) from an absent one.
type NewsInput struct {
	Title          *string
	Slug           *string
	Excerpt        *string
	Content        *string
	ImageURL       *string
	Status         *domain.NewsStatus
	PublishedAt    *time.Time
	PublishedAtSet bool
}

// NewNewsService constructs the service.
func NewNewsService(deps NewsDependencies) *NewsService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &NewsService{
		news:       deps.NewsRepo,
		guard:      deps.Guard,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        now,
	}
}

// ListPublished returns one page of the public feed. Store failures
// degrade to an empty page with a logged warning so the page still renders.
func (s *NewsService) ListPublished(ctx context.Context, page, pageSize int) ([]domain.NewsItem, int64, error) {
	if page < 0 {
		page = 0
	}
	pageSize = clampLimit(pageSize)

	items, total, err := s.news.ListPublished(ctx, page, pageSize)
	if err != nil {
		s.logger.Warn("news listing degraded to empty result", zap.Error(err))
		return []domain.NewsItem{}, 0, nil
	}
	return items, total, nil
}

// GetPublishedBySlug returns a single published item.
func (s *NewsService) GetPublishedBySlug(ctx context.Context, slug string) (*domain.NewsItem, error) {
	item, err := s.news.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("news item", map[string]any{"slug": slug})
		}
		return nil, apperrors.NewStoreError("get news by slug", err)
	}
	return item, nil
}

// ListAll returns every item including drafts, for the admin dashboard.
func (s *NewsService) ListAll(ctx context.Context) ([]domain.NewsItem, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	items, err := s.news.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("list news", err)
	}
	return items, nil
}

// GetByID returns one item including drafts, for the admin edit form.
func (s *NewsService) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("news item", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreError("get news by id", err)
	}
	return item, nil
}

// Create inserts a news item. Creating as published without an explicit
// publish time stamps it with the current time.
func (s *NewsService) Create(ctx context.Context, input NewsInput) (*domain.NewsItem, error) {
	session, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if input.Title == nil || input.Slug == nil {
		return nil, apperrors.NewValidationError("title and slug required", nil)
	}

	item := &domain.NewsItem{
		Slug:     *input.Slug,
		Title:    *input.Title,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		ImageURL: input.ImageURL,
		Status:   domain.NewsStatusDraft,
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.PublishedAtSet {
		item.PublishedAt = input.PublishedAt
	}
	if item.Status == domain.NewsStatusPublished && item.PublishedAt == nil {
		publishedAt := s.now()
		item.PublishedAt = &publishedAt
	}

	if err := s.news.Create(ctx, item); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("slug already in use", map[string]any{"slug": item.Slug})
		}
		return nil, apperrors.NewStoreError("create news", err)
	}

	if item.Status == domain.NewsStatusPublished {
		s.publishEvent(ctx, session, item)
	}
	return item, nil
}

// Update applies a partial update. Saving as published without an
// explicit publish time stamps it exactly once: an already-set timestamp
// is preserved unless the caller explicitly provides (or clears) one.
func (s *NewsService) Update(ctx context.Context, id int64, input NewsInput) (*domain.NewsItem, error) {
	session, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("news item", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreError("get news by id", err)
	}

	wasPublished := item.Status == domain.NewsStatusPublished

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Slug != nil {
		item.Slug = *input.Slug
	}
	if input.Excerpt != nil {
		item.Excerpt = input.Excerpt
	}
	if input.Content != nil {
		item.Content = input.Content
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.PublishedAtSet {
		item.PublishedAt = input.PublishedAt
	}
	if item.Status == domain.NewsStatusPublished && !input.PublishedAtSet && item.PublishedAt == nil {
		publishedAt := s.now()
		item.PublishedAt = &publishedAt
	}

	if err := s.news.Update(ctx, item); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("slug already in use", map[string]any{"slug": item.Slug})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("news item", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreError("update news", err)
	}

	if !wasPublished && item.Status == domain.NewsStatusPublished {
		s.publishEvent(ctx, session, item)
	}
	return item, nil
}

// Delete removes a news item.
func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return err
	}

	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("news item", map[string]any{"id": id})
		}
		return apperrors.NewStoreError("delete news", err)
	}
	return nil
}

func (s *NewsService) publishEvent(ctx context.Context, session *auth.Session, item *domain.NewsItem) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventNewsPublished,
		Subject:   item.Slug,
		Actor:     events.Actor{Type: events.ActorStaff, StaffID: &session.Identity.ID},
		Timestamp: s.now(),
		Payload: events.NewsPublishedPayload{
			Slug:  item.Slug,
			Title: item.Title,
		},
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
