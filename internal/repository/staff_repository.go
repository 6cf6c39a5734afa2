package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// StaffRepository handles persistence for employee accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffAccount) error
	GetByID(ctx context.Context, id string) (*domain.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffAccount) error {
	const query = `
        INSERT INTO staff_accounts (name, email, password_hash, active_flag)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Active,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffAccount, error) {
	const query = `
        SELECT id, name, email, password_hash, active_flag, created_at, updated_at
        FROM staff_accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	const query = `
        SELECT id, name, email, password_hash, active_flag, created_at, updated_at
        FROM staff_accounts WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.StaffAccount, error) {
	var staff domain.StaffAccount
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Active,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}
