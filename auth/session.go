package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names for the two session carriers.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

const (
	cookiePath     = "/"
	cookieSameSite = "Lax"
)

// Carriers maps tokens to and from the client-visible cookies. Attributes
// are fixed per kind; only the secure flag and the lifetimes come from
// configuration. Cookies are the sole transport, there is no Authorization
// header path.
type Carriers struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCarriers builds the carrier set from config. The refresh lifetime is
// expected to exceed the access lifetime.
func NewCarriers(cfg Config) *Carriers {
	return &Carriers{
		secure:     cfg.GetSecureCookies(),
		accessTTL:  cfg.GetAccessTokenTTL(),
		refreshTTL: cfg.GetRefreshTokenTTL(),
	}
}

// Attach sets the cookie for the token kind with its fixed attribute set.
func (s *Carriers) Attach(c *fiber.Ctx, kind TokenKind, token string) {
	ttl := s.ttl(kind)
	c.Cookie(&fiber.Cookie{
		Name:     s.CookieName(kind),
		Value:    token,
		Path:     cookiePath,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl / time.Second),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: cookieSameSite,
	})
}

// Clear expires the cookie for the token kind.
func (s *Carriers) Clear(c *fiber.Ctx, kind TokenKind) {
	c.Cookie(&fiber.Cookie{
		Name:     s.CookieName(kind),
		Value:    "",
		Path:     cookiePath,
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: cookieSameSite,
	})
}

// ClearAll detaches both carriers.
func (s *Carriers) ClearAll(c *fiber.Ctx) {
	s.Clear(c, TokenKindAccess)
	s.Clear(c, TokenKindRefresh)
}

// Extract returns the raw token for the kind, or "" when the carrier is
// absent.
func (s *Carriers) Extract(c *fiber.Ctx, kind TokenKind) string {
	return c.Cookies(s.CookieName(kind))
}

// CookieName returns the carrier cookie name for a token kind.
func (s *Carriers) CookieName(kind TokenKind) string {
	if kind == TokenKindRefresh {
		return RefreshTokenCookie
	}
	return AccessTokenCookie
}

func (s *Carriers) ttl(kind TokenKind) time.Duration {
	if kind == TokenKindRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}
