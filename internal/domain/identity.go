package domain

// Role is the coarse-grained application role derived from an identity.
type Role string

const (
	RoleUnknown  Role = "unknown"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Identity is the authenticated caller as seen by authorization code.
// It is ephemeral: reconstructed per request from credentials, never stored.
type Identity struct {
	ID    string
	Email string
}
