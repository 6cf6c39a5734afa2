package auth

import (
	"testing"

	"github.com/gholaman/municipal-portal/internal/domain"
)

func TestRoleOf(t *testing.T) {
	resolver := NewResolver([]string{"admin@x.com", " Boss@X.com "})

	tests := []struct {
		name     string
		identity *domain.Identity
		want     domain.Role
	}{
		{"no identity", nil, domain.RoleUnknown},
		{"admin email exact", &domain.Identity{ID: "1", Email: "admin@x.com"}, domain.RoleAdmin},
		{"admin email different casing", &domain.Identity{ID: "1", Email: "ADMIN@X.COM"}, domain.RoleAdmin},
		{"admin email from padded config entry", &domain.Identity{ID: "2", Email: "boss@x.com"}, domain.RoleAdmin},
		{"non-admin email", &domain.Identity{ID: "3", Email: "staff@x.com"}, domain.RoleEmployee},
		{"empty email fails toward employee", &domain.Identity{ID: "4", Email: ""}, domain.RoleEmployee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.RoleOf(tt.identity); got != tt.want {
				t.Errorf("RoleOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAdminImpliesEmployee(t *testing.T) {
	resolver := NewResolver([]string{"admin@x.com"})

	identities := []*domain.Identity{
		nil,
		{ID: "1", Email: "admin@x.com"},
		{ID: "2", Email: "staff@x.com"},
		{ID: "3", Email: ""},
	}

	for _, identity := range identities {
		if resolver.IsAdmin(identity) && !resolver.IsEmployee(identity) {
			t.Errorf("identity %+v is admin but not employee", identity)
		}
	}

	if resolver.IsEmployee(nil) {
		t.Error("nil identity must never be an employee")
	}
}

func TestIsAdminEmail(t *testing.T) {
	resolver := NewResolver([]string{"admin@x.com", "boss@x.com"})

	tests := []struct {
		email string
		want  bool
	}{
		{"admin@x.com", true},
		{"ADMIN@X.COM", true},
		{"  admin@x.com  ", true},
		{"boss@x.com", true},
		{"staff@x.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := resolver.IsAdminEmail(tt.email); got != tt.want {
				t.Errorf("IsAdminEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestEmptyAllowlist(t *testing.T) {
	for _, resolver := range []*Resolver{NewResolver(nil), NewResolver([]string{"", "  "})} {
		if resolver.IsAdminEmail("admin@x.com") {
			t.Error("no email may be admin with an empty allowlist")
		}
		if resolver.IsAdmin(&domain.Identity{ID: "1", Email: "admin@x.com"}) {
			t.Error("no identity may be admin with an empty allowlist")
		}
	}
}

func TestRoleScenario(t *testing.T) {
	// Mirrors the staff onboarding scenario: allowlist configured with
	// padding and mixed intent, identities arrive with arbitrary casing.
	resolver := NewResolver([]string{"admin@x.com", " boss@x.com"})

	admin := &domain.Identity{ID: "1", Email: "ADMIN@X.COM"}
	staff := &domain.Identity{ID: "2", Email: "staff@x.com"}

	if !resolver.IsAdmin(admin) {
		t.Error("ADMIN@X.COM should resolve to admin")
	}
	if resolver.IsAdmin(staff) {
		t.Error("staff@x.com should not resolve to admin")
	}
	if !resolver.IsEmployee(staff) {
		t.Error("staff@x.com should resolve to employee")
	}
	if resolver.IsAdmin(nil) || resolver.IsEmployee(nil) {
		t.Error("absent identity should resolve to neither role")
	}
}
