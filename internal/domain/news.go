package domain

import "time"

// NewsStatus enumerates publication states for news items.
type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusPublished NewsStatus = "published"
)

// Valid reports whether the status is one of the known states.
func (s NewsStatus) Valid() bool {
	return s == NewsStatusDraft || s == NewsStatusPublished
}

// NewsItem models a municipal news entry managed by admins.
type NewsItem struct {
	ID          int64
	Slug        string
	Title       string
	Excerpt     *string
	Content     *string
	ImageURL    *string
	Status      NewsStatus
	CreatedAt   time.Time
	PublishedAt *time.Time
}
