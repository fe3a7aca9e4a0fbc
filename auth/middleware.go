package auth

import (
	"github.com/gofiber/fiber/v2"
)

// Authenticate is the authentication gate. It extracts the access carrier,
// verifies signature and expiry, and attaches the resolved claims to the
// request context. Missing, expired, invalid, and malformed tokens all
// surface as the same ErrUnauthenticated; the distinction is logged only.
//
// The gate never consults the credential store or the session epoch. Access
// tokens stay valid until their own expiry even after a global logout.
func Authenticate(tokens TokenService, carriers *Carriers, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		raw := carriers.Extract(c, TokenKindAccess)
		if raw == "" {
			return ErrUnauthenticated
		}

		claims, err := tokens.Validate(TokenKindAccess, raw)
		if err != nil {
			logger.Debug("access token rejected", "error", err)
			return ErrUnauthenticated
		}

		c.Locals(ClaimsContextKey, claims)
		c.SetUserContext(WithClaimsContext(c.UserContext(), claims))

		return c.Next()
	}
}

// RequireRole passes only when the authenticated identity holds the role.
// It must run after Authenticate.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromLocals(c)
		if !ok {
			return ErrUnauthenticated
		}

		if !claims.HasRole(role) {
			return ErrForbidden
		}

		return c.Next()
	}
}

// RequireOwnerOrRole loads the target resource's owner through the lookup
// and passes when the caller owns it or holds the role. The lookup is
// read-only; absence surfaces as the lookup's not-found error.
func RequireOwnerOrRole(lookup OwnershipLookup, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromLocals(c)
		if !ok {
			return ErrUnauthenticated
		}

		ownerID, err := lookup.FindOwnerID(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		if claims.UserID() == ownerID.String() || claims.HasRole(role) {
			return c.Next()
		}

		return ErrForbidden
	}
}
