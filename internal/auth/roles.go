package auth

import (
	"strings"

	"github.com/gholaman/municipal-portal/internal/domain"
)

// Resolver derives application roles from an identity's email address.
// The admin allowlist is injected at construction instead of read from
// ambient process state, so tests can vary it freely.
type Resolver struct {
	adminEmails map[string]struct{}
}

// NewResolver builds a resolver from the configured admin-email list.
// Entries are trimmed and lower-cased; blanks are dropped. An empty list
// means no email is ever admin.
func NewResolver(adminEmails []string) *Resolver {
	set := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		set[email] = struct{}{}
	}
	return &Resolver{adminEmails: set}
}

// RoleOf derives the role for an identity:
// no identity -> unknown; email in the admin set -> admin; otherwise employee.
// An authenticated identity without an email is treated as employee, never
// admin, so a missing claim fails toward the lower privilege.
func (r *Resolver) RoleOf(identity *domain.Identity) domain.Role {
	if identity == nil {
		return domain.RoleUnknown
	}
	if r.IsAdminEmail(identity.Email) {
		return domain.RoleAdmin
	}
	return domain.RoleEmployee
}

// IsAdmin reports whether the identity resolves to the admin role.
func (r *Resolver) IsAdmin(identity *domain.Identity) bool {
	return r.RoleOf(identity) == domain.RoleAdmin
}

// IsEmployee reports whether the identity may reach employee surfaces.
// Admins are a superset of employees; a nil identity is never an employee.
func (r *Resolver) IsEmployee(identity *domain.Identity) bool {
	role := r.RoleOf(identity)
	return role == domain.RoleEmployee || role == domain.RoleAdmin
}

// IsAdminEmail checks admin-set membership for a raw email claim. Used at
// the network edge where only the claim is available, not a full identity.
func (r *Resolver) IsAdminEmail(email string) bool {
	if email == "" {
		return false
	}
	_, ok := r.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
