package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/gholaman/municipal-portal/pkg/util"
)

// Guard performs the authoritative server-side role checks. Privileged
// service operations call a Require method before touching the store and
// propagate its failure unchanged.
type Guard struct {
	resolver *Resolver
}

// NewGuard constructs a guard over the given resolver.
func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Resolver exposes the underlying role resolver.
func (g *Guard) Resolver() *Resolver {
	return g.resolver
}

// RequireEmployee resolves the caller from the request context. It fails
// with AUTHENTICATION_REQUIRED when no identity resolves and with
// AUTHORIZATION_DENIED when the role is insufficient; on success it
// returns the same session the middleware resolved.
func (g *Guard) RequireEmployee(ctx context.Context) (*Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, apperrors.NewAuthenticationRequired("authentication required")
	}
	if !g.resolver.IsEmployee(session.Identity) {
		return nil, apperrors.NewAuthorizationDenied("employee access required")
	}
	return session, nil
}

// RequireAdmin is RequireEmployee with the admin predicate.
func (g *Guard) RequireAdmin(ctx context.Context) (*Session, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, apperrors.NewAuthenticationRequired("authentication required")
	}
	if !g.resolver.IsAdmin(session.Identity) {
		return nil, apperrors.NewAuthorizationDenied("admin access required")
	}
	return session, nil
}

// RequireEmployeePage guards staff-dashboard paths at the routing edge.
// Browsers get a redirect to the login page instead of a raw status; the
// redirect target carries the original path so login can return there.
// This guard is advisory: the services re-check authoritatively.
func RequireEmployeePage(resolver *Resolver, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromFiber(c)
		if !ok || !resolver.IsEmployee(session.Identity) {
			return c.Redirect(loginPath+"?redirect="+c.Path(), fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAdminPage guards admin paths: unauthenticated callers go to
// login, authenticated non-admins back to the dashboard.
func RequireAdminPage(resolver *Resolver, loginPath, dashboardPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromFiber(c)
		if !ok {
			return c.Redirect(loginPath+"?redirect="+c.Path(), fiber.StatusFound)
		}
		if !resolver.IsAdminEmail(session.Identity.Email) {
			return c.Redirect(dashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
