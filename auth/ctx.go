package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ClaimsContextKey is the fiber locals key the authentication gate stores
// verified claims under.
const ClaimsContextKey = "session"

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the SessionClaims in the given context
func WithClaimsContext(r context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the SessionClaims from the standard context
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*SessionClaims)
	return raw, ok
}

// ClaimsFromLocals extracts the SessionClaims the gate attached to the
// request.
func ClaimsFromLocals(c *fiber.Ctx) (*SessionClaims, bool) {
	raw := c.Locals(ClaimsContextKey)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(*SessionClaims)
	return claims, ok
}
