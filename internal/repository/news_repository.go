package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// NewsRepository encapsulates news persistence.
type NewsRepository interface {
	Create(ctx context.Context, item *domain.NewsItem) error
	Update(ctx context.Context, item *domain.NewsItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.NewsItem, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.NewsItem, error)
	ListPublished(ctx context.Context, page, pageSize int) ([]domain.NewsItem, int64, error)
	ListAll(ctx context.Context) ([]domain.NewsItem, error)
}

type newsRepository struct {
	pool *pgxpool.Pool
}

// NewNewsRepository instantiates the repository.
func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

const newsColumns = `id, slug, title, excerpt, content, image_url, status, created_at, published_at`

func (r *newsRepository) Create(ctx context.Context, item *domain.NewsItem) error {
	const query = `
        INSERT INTO news (slug, title, excerpt, content, image_url, status, published_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		item.Slug,
		item.Title,
		item.Excerpt,
		item.Content,
		item.ImageURL,
		item.Status,
		item.PublishedAt,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *newsRepository) Update(ctx context.Context, item *domain.NewsItem) error {
	const query = `
        UPDATE news SET slug=$1, title=$2, excerpt=$3, content=$4, image_url=$5, status=$6, published_at=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		item.Slug,
		item.Title,
		item.Excerpt,
		item.Content,
		item.ImageURL,
		item.Status,
		item.PublishedAt,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	const query = `SELECT ` + newsColumns + ` FROM news WHERE id=$1`
	return scanNewsItem(r.pool.QueryRow(ctx, query, id))
}

func (r *newsRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.NewsItem, error) {
	const query = `SELECT ` + newsColumns + ` FROM news WHERE status='published' AND slug=$1`
	return scanNewsItem(r.pool.QueryRow(ctx, query, slug))
}

// ListPublished returns one page of published items ordered by publish
// time (unpublished timestamps sort last), newest first, plus the total
// published count for pagination.
func (r *newsRepository) ListPublished(ctx context.Context, page, pageSize int) ([]domain.NewsItem, int64, error) {
	const query = `
        SELECT ` + newsColumns + `, COUNT(*) OVER ()
        FROM news
        WHERE status='published'
        ORDER BY published_at DESC NULLS LAST, created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.NewsItem
	var total int64
	for rows.Next() {
		var item domain.NewsItem
		if err := rows.Scan(
			&item.ID,
			&item.Slug,
			&item.Title,
			&item.Excerpt,
			&item.Content,
			&item.ImageURL,
			&item.Status,
			&item.CreatedAt,
			&item.PublishedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *newsRepository) ListAll(ctx context.Context) ([]domain.NewsItem, error) {
	const query = `SELECT ` + newsColumns + ` FROM news ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.NewsItem
	for rows.Next() {
		item, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanNewsItem(row pgx.Row) (*domain.NewsItem, error) {
	var item domain.NewsItem
	if err := row.Scan(
		&item.ID,
		&item.Slug,
		&item.Title,
		&item.Excerpt,
		&item.Content,
		&item.ImageURL,
		&item.Status,
		&item.CreatedAt,
		&item.PublishedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
