package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gholaman/municipal-portal/internal/domain"
	"github.com/gholaman/municipal-portal/internal/repository"
)

const sessionKey = "auth_session"

type sessionContextKey struct{}

// Session is the authenticated caller for one request: the resolved
// identity plus the staff record it was validated against. Authorized
// operations reuse this same instance rather than re-resolving, so every
// check within a request sees a consistent view of the caller.
type Session struct {
	Identity *domain.Identity
	Staff    *domain.StaffAccount
}

// Middleware resolves bearer tokens into sessions. It never rejects a
// request itself: a missing or invalid token simply leaves the request
// without a session, and the guards decide what that means per route.
type Middleware struct {
	tokens *TokenManager
	staff  repository.StaffRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, staff repository.StaffRepository) *Middleware {
	return &Middleware{tokens: tokens, staff: staff}
}

// Handle attaches the caller's session to the request when credentials resolve.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	session := m.resolve(c)
	if session != nil {
		c.Locals(sessionKey, session)
		c.SetUserContext(ContextWithSession(c.UserContext(), session))
	}
	return c.Next()
}

func (m *Middleware) resolve(c *fiber.Ctx) *Session {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil
	}

	// A missing row and a transient store failure both mean the identity
	// does not resolve for this request.
	staff, err := m.staff.GetByID(c.Context(), claims.SubjectID)
	if err != nil {
		return nil
	}
	if !staff.Active {
		return nil
	}

	return &Session{
		Identity: &domain.Identity{ID: staff.ID, Email: staff.Email},
		Staff:    staff,
	}
}

// SessionFromFiber retrieves the session attached by Handle, if any.
func SessionFromFiber(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}

// ContextWithSession stores the session for downstream service calls.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext retrieves the session stored by the middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
