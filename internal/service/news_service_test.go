package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/gholaman/municipal-portal/internal/auth"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/events"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

type stubNewsRepo struct {
	createFn             func(ctx context.Context, item *domain.NewsItem) error
	updateFn             func(ctx context.Context, item *domain.NewsItem) error
	deleteFn             func(ctx context.Context, id int64) error
	getByIDFn            func(ctx context.Context, id int64) (*domain.NewsItem, error)
	getPublishedBySlugFn func(ctx context.Context, slug string) (*domain.NewsItem, error)
	listPublishedFn      func(ctx context.Context, page, pageSize int) ([]domain.NewsItem, int64, error)
	listAllFn            func(ctx context.Context) ([]domain.NewsItem, error)
}

func (s *stubNewsRepo) Create(ctx context.Context, item *domain.NewsItem) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, item)
}

func (s *stubNewsRepo) Update(ctx context.Context, item *domain.NewsItem) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, item)
}

func (s *stubNewsRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubNewsRepo) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	if s.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubNewsRepo) GetPublishedBySlug(ctx context.Context, slug string) (*domain.NewsItem, error) {
	if s.getPublishedBySlugFn == nil {
		return nil, pgx.ErrNoRows
	}
	return s.getPublishedBySlugFn(ctx, slug)
}

func (s *stubNewsRepo) ListPublished(ctx context.Context, page, pageSize int) ([]domain.NewsItem, int64, error) {
	if s.listPublishedFn == nil {
		return nil, 0, nil
	}
	return s.listPublishedFn(ctx, page, pageSize)
}

func (s *stubNewsRepo) ListAll(ctx context.Context) ([]domain.NewsItem, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

var newsTestClock = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestNewsService(repo *stubNewsRepo, dispatcher events.Dispatcher) *NewsService {
	guard := auth.NewGuard(auth.NewResolver([]string{"admin@x.com"}))
	return NewNewsService(NewsDependencies{
		NewsRepo:   repo,
		Guard:      guard,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		Now:        func() time.Time { return newsTestClock },
	})
}

func adminContext() context.Context {
	session := &auth.Session{Identity: &domain.Identity{ID: "admin-1", Email: "admin@x.com"}}
	return auth.ContextWithSession(context.Background(), session)
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.NewsStatus) *domain.NewsStatus { return &s }

func TestListPublishedDegradesOnStoreFailure(t *testing.T) {
	repo := &stubNewsRepo{
		listPublishedFn: func(context.Context, int, int) ([]domain.NewsItem, int64, error) {
			return nil, 0, errors.New("connection refused")
		},
	}
	svc := newTestNewsService(repo, &recordingDispatcher{})

	items, total, err := svc.ListPublished(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("public feed must degrade, not fail: %v", err)
	}
	if len(items) != 0 || total != 0 {
		t.Errorf("expected empty degraded page, got %d items, total %d", len(items), total)
	}
}

func TestGetPublishedBySlugNotFound(t *testing.T) {
	svc := newTestNewsService(&stubNewsRepo{}, &recordingDispatcher{})

	_, err := svc.GetPublishedBySlug(context.Background(), "missing")
	if got := errorCode(t, err); got != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}
}

func TestNewsMutationsRequireAdmin(t *testing.T) {
	svc := newTestNewsService(&stubNewsRepo{}, &recordingDispatcher{})
	input := NewsInput{Title: strPtr("t"), Slug: strPtr("t")}

	t.Run("no session", func(t *testing.T) {
		_, err := svc.Create(context.Background(), input)
		if !apperrors.IsAuthenticationRequired(err) {
			t.Errorf("expected AUTHENTICATION_REQUIRED, got %v", err)
		}
	})

	t.Run("employee session", func(t *testing.T) {
		_, err := svc.Create(employeeContext(), input)
		if !apperrors.IsAuthorizationDenied(err) {
			t.Errorf("expected AUTHORIZATION_DENIED, got %v", err)
		}
		if _, err := svc.Update(employeeContext(), 1, input); !apperrors.IsAuthorizationDenied(err) {
			t.Errorf("expected AUTHORIZATION_DENIED on update, got %v", err)
		}
		if err := svc.Delete(employeeContext(), 1); !apperrors.IsAuthorizationDenied(err) {
			t.Errorf("expected AUTHORIZATION_DENIED on delete, got %v", err)
		}
	})
}

func TestCreateNews(t *testing.T) {
	t.Run("requires title and slug", func(t *testing.T) {
		svc := newTestNewsService(&stubNewsRepo{}, &recordingDispatcher{})
		_, err := svc.Create(adminContext(), NewsInput{Title: strPtr("only title")})
		if got := errorCode(t, err); got != "VALIDATION_FAILED" {
			t.Errorf("expected VALIDATION_FAILED, got %s", got)
		}
	})

	t.Run("draft has no publish time", func(t *testing.T) {
		svc := newTestNewsService(&stubNewsRepo{}, &recordingDispatcher{})
		item, err := svc.Create(adminContext(), NewsInput{Title: strPtr("t"), Slug: strPtr("t")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Status != domain.NewsStatusDraft {
			t.Errorf("items default to draft, got %s", item.Status)
		}
		if item.PublishedAt != nil {
			t.Errorf("drafts must not carry a publish time, got %v", item.PublishedAt)
		}
	})

	t.Run("publishing stamps the current time", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		svc := newTestNewsService(&stubNewsRepo{}, dispatcher)
		item, err := svc.Create(adminContext(), NewsInput{
			Title:  strPtr("t"),
			Slug:   strPtr("t"),
			Status: statusPtr(domain.NewsStatusPublished),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.PublishedAt == nil || !item.PublishedAt.Equal(newsTestClock) {
			t.Errorf("expected publish time %v, got %v", newsTestClock, item.PublishedAt)
		}
		if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventNewsPublished {
			t.Errorf("expected one news_published event, got %+v", dispatcher.published)
		}
	})

	t.Run("explicit publish time wins", func(t *testing.T) {
		explicit := newsTestClock.Add(-48 * time.Hour)
		svc := newTestNewsService(&stubNewsRepo{}, &recordingDispatcher{})
		item, err := svc.Create(adminContext(), NewsInput{
			Title:          strPtr("t"),
			Slug:           strPtr("t"),
			Status:         statusPtr(domain.NewsStatusPublished),
			PublishedAt:    &explicit,
			PublishedAtSet: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.PublishedAt == nil || !item.PublishedAt.Equal(explicit) {
			t.Errorf("expected explicit time %v, got %v", explicit, item.PublishedAt)
		}
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		repo := &stubNewsRepo{
			createFn: func(context.Context, *domain.NewsItem) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := newTestNewsService(repo, &recordingDispatcher{})
		_, err := svc.Create(adminContext(), NewsInput{Title: strPtr("t"), Slug: strPtr("taken")})
		if got := errorCode(t, err); got != "CONFLICT" {
			t.Errorf("expected CONFLICT, got %s", got)
		}
	})
}

func TestUpdateNewsPublishTimestamp(t *testing.T) {
	firstPublish := newsTestClock.Add(-72 * time.Hour)

	storedItem := func(status domain.NewsStatus, publishedAt *time.Time) *stubNewsRepo {
		return &stubNewsRepo{
			getByIDFn: func(_ context.Context, id int64) (*domain.NewsItem, error) {
				return &domain.NewsItem{ID: id, Slug: "city-update", Title: "City update", Status: status, PublishedAt: publishedAt}, nil
			},
		}
	}

	t.Run("draft to published stamps once", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		svc := newTestNewsService(storedItem(domain.NewsStatusDraft, nil), dispatcher)

		item, err := svc.Update(adminContext(), 1, NewsInput{Status: statusPtr(domain.NewsStatusPublished)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.PublishedAt == nil || !item.PublishedAt.Equal(newsTestClock) {
			t.Errorf("expected stamp %v, got %v", newsTestClock, item.PublishedAt)
		}
		if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventNewsPublished {
			t.Errorf("expected one news_published event, got %+v", dispatcher.published)
		}
	})

	t.Run("resaving published keeps the original stamp", func(t *testing.T) {
		dispatcher := &recordingDispatcher{}
		svc := newTestNewsService(storedItem(domain.NewsStatusPublished, &firstPublish), dispatcher)

		item, err := svc.Update(adminContext(), 1, NewsInput{Title: strPtr("City update, revised")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.PublishedAt == nil || !item.PublishedAt.Equal(firstPublish) {
			t.Errorf("resave must preserve %v, got %v", firstPublish, item.PublishedAt)
		}
		if len(dispatcher.published) != 0 {
			t.Error("resaving an already published item must not emit news_published")
		}
	})

	t.Run("explicit override replaces the stamp", func(t *testing.T) {
		override := newsTestClock.Add(-time.Hour)
		svc := newTestNewsService(storedItem(domain.NewsStatusPublished, &firstPublish), &recordingDispatcher{})

		item, err := svc.Update(adminContext(), 1, NewsInput{PublishedAt: &override, PublishedAtSet: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.PublishedAt == nil || !item.PublishedAt.Equal(override) {
			t.Errorf("expected override %v, got %v", override, item.PublishedAt)
		}
	})

	t.Run("explicit null clears the stamp", func(t *testing.T) {
		svc := newTestNewsService(storedItem(domain.NewsStatusPublished, &firstPublish), &recordingDispatcher{})

		item, err := svc.Update(adminContext(), 1, NewsInput{PublishedAtSet: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.PublishedAt != nil {
			t.Errorf("explicit null must clear the stamp, got %v", item.PublishedAt)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := newTestNewsService(&stubNewsRepo{}, &recordingDispatcher{})
		_, err := svc.Update(adminContext(), 404, NewsInput{Title: strPtr("x")})
		if got := errorCode(t, err); got != "NOT_FOUND" {
			t.Errorf("expected NOT_FOUND, got %s", got)
		}
	})
}

func TestDeleteNews(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		repo := &stubNewsRepo{
			deleteFn: func(context.Context, int64) error { return pgx.ErrNoRows },
		}
		svc := newTestNewsService(repo, &recordingDispatcher{})
		err := svc.Delete(adminContext(), 404)
		if got := errorCode(t, err); got != "NOT_FOUND" {
			t.Errorf("expected NOT_FOUND, got %s", got)
		}
	})

	t.Run("deletes", func(t *testing.T) {
		var deleted int64
		repo := &stubNewsRepo{
			deleteFn: func(_ context.Context, id int64) error {
				deleted = id
				return nil
			},
		}
		svc := newTestNewsService(repo, &recordingDispatcher{})
		if err := svc.Delete(adminContext(), 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 7 {
			t.Errorf("expected delete of id 7, got %d", deleted)
		}
	})
}
