package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// RequestRepository encapsulates citizen-request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByCode(ctx context.Context, code string) (*domain.Request, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Request, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus, limit int) ([]domain.Request, error)
	CountByStatus(ctx context.Context) (domain.RequestStats, error)
	UpdateStatus(ctx context.Context, code string, status domain.RequestStatus) (*domain.Request, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates the repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, code, service_type, title, description, status, payload, citizen_name, citizen_phone, created_at, updated_at`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (code, service_type, title, description, status, payload, citizen_name, citizen_phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	payload, err := json.Marshal(request.Payload)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, query,
		request.Code,
		request.ServiceType,
		request.Title,
		request.Description,
		request.Status,
		payload,
		request.CitizenName,
		request.CitizenPhone,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) GetByCode(ctx context.Context, code string) (*domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM requests WHERE code=$1`
	row := r.pool.QueryRow(ctx, query, code)
	return scanRequest(row)
}

func (r *requestRepository) ListRecent(ctx context.Context, limit int) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM requests ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus, limit int) ([]domain.Request, error) {
	const query = `SELECT ` + requestColumns + ` FROM requests WHERE status=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) CountByStatus(ctx context.Context) (domain.RequestStats, error) {
	const query = `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status='pending'),
            COUNT(*) FILTER (WHERE status='in-review'),
            COUNT(*) FILTER (WHERE status='completed'),
            COUNT(*) FILTER (WHERE status='rejected')
        FROM requests`

	var stats domain.RequestStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.All,
		&stats.Pending,
		&stats.InReview,
		&stats.Completed,
		&stats.Rejected,
	); err != nil {
		return domain.RequestStats{}, err
	}
	return stats, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, code string, status domain.RequestStatus) (*domain.Request, error) {
	const query = `
        UPDATE requests SET status=$1, updated_at=NOW()
        WHERE code=$2
        RETURNING ` + requestColumns
	row := r.pool.QueryRow(ctx, query, status, code)
	return scanRequest(row)
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var request domain.Request
	var rawPayload []byte
	if err := row.Scan(
		&request.ID,
		&request.Code,
		&request.ServiceType,
		&request.Title,
		&request.Description,
		&request.Status,
		&rawPayload,
		&request.CitizenName,
		&request.CitizenPhone,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	payload, err := domain.DecodePayload(request.ServiceType, rawPayload)
	if err != nil {
		return nil, err
	}
	request.Payload = payload
	return &request, nil
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *request)
	}
	return result, rows.Err()
}
