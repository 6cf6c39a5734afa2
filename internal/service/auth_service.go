package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gholaman/municipal-portal/internal/auth"
	"github.com/gholaman/municipal-portal/internal/config"
	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/repository"
	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// AuthService coordinates staff login.
type AuthService struct {
	staff      repository.StaffRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, staff repository.StaffRepository) *AuthService {
	return &AuthService{
		staff:      staff,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginStaff authenticates an employee and issues a bearer token.
// A missing account and a wrong password look the same to the caller.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.StaffAccount, string, time.Time, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthenticationRequired("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewStoreError("get staff by email", err)
	}
	if !staff.Active {
		return nil, "", time.Time{}, apperrors.NewAuthenticationRequired("invalid credentials")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewAuthenticationRequired("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(staff.ID, staff.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return staff, token, expiresAt, nil
}

// Logout is a no-op for the stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the manager for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
