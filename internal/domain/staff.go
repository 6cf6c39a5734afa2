package domain

import "time"

// StaffAccount models an employee login. Roles are never stored here;
// they are derived from the configured admin-email allowlist at call time.
type StaffAccount struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
