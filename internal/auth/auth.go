// Package auth carries the caller identity and the role gate every
// admin operation sits behind.
package auth

import (
	"context"
	"strings"
)

// Identity describes the authenticated caller of an admin request.
type Identity struct {
	Name        string
	Email       string
	Role        string
	Permissions []string
}

// HasRole reports whether the identity holds the given role, compared
// case-insensitively.
func HasRole(id Identity, role string) bool {
	return strings.EqualFold(strings.TrimSpace(id.Role), strings.TrimSpace(role))
}

// Can reports whether the identity holds a permission. An empty
// permission list and the wildcard both allow everything.
func (id Identity) Can(permission string) bool {
	if len(id.Permissions) == 0 {
		return true
	}
	for _, p := range id.Permissions {
		p = strings.TrimSpace(p)
		if p == "*" || p == permission {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithIdentity stores the identity on the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity set by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
