package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// NewsRequest is the create/update payload. published_at is kept raw to
// distinguish three states: absent, explicit null, and explicit value.
type NewsRequest struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	Excerpt     *string            `json:"excerpt"`
	Content     *string            `json:"content"`
	ImageURL    *string            `json:"image_url"`
	Status      *domain.NewsStatus `json:"status"`
	PublishedAt json.RawMessage    `json:"published_at"`
}

// ParsePublishedAt returns the explicit timestamp (nil for explicit null)
// and whether the field was present at all.
func (r NewsRequest) ParsePublishedAt() (*time.Time, bool, error) {
	if len(r.PublishedAt) == 0 {
		return nil, false, nil
	}
	if string(r.PublishedAt) == "null" {
		return nil, true, nil
	}
	var raw string
	if err := json.Unmarshal(r.PublishedAt, &raw); err != nil {
		return nil, true, fmt.Errorf("published_at must be an RFC3339 string or null")
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, true, fmt.Errorf("published_at must be an RFC3339 string or null")
	}
	return &parsed, true, nil
}

// NewsItemResponse is the API shape of a news item.
type NewsItemResponse struct {
	ID          int64             `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Excerpt     *string           `json:"excerpt"`
	Content     *string           `json:"content"`
	ImageURL    *string           `json:"image_url"`
	Status      domain.NewsStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	PublishedAt *time.Time        `json:"published_at"`
}

// NewsListResponse pages the public feed.
type NewsListResponse struct {
	Items []NewsItemResponse `json:"items"`
	Total int64              `json:"total"`
}

// NewNewsItemResponse maps a domain item into its API shape.
func NewNewsItemResponse(item *domain.NewsItem) NewsItemResponse {
	return NewsItemResponse{
		ID:          item.ID,
		Slug:        item.Slug,
		Title:       item.Title,
		Excerpt:     item.Excerpt,
		Content:     item.Content,
		ImageURL:    item.ImageURL,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		PublishedAt: item.PublishedAt,
	}
}
