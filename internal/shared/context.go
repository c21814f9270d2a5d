package shared

import (
	"context"

	"github.com/google/uuid"
)

// Role names recognised by the API.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// Identity carries the authenticated caller through the request context. The
// workflow layer is role-agnostic; authorization happens in middleware before
// a handler runs.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     string
}

// IsAdmin reports whether the identity holds the Admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

type identityContextKey struct{}

// ContextWithIdentity stores the caller identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
