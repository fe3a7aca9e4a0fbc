package auth

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the claim set carried by both token kinds. Access and
// refresh tokens share the shape and differ by purpose: refresh tokens embed
// the session epoch in Ver, access tokens carry it as advisory data at most.
// Claims are integrity-protected, not encrypted, so nothing secret goes here.
type SessionClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
	Ver   *int64   `json:"ver,omitempty"`
}

// UserID returns the subject claim.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// HasRole checks role membership.
func (c *SessionClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Epoch returns the embedded session epoch, if any.
func (c *SessionClaims) Epoch() (int64, bool) {
	if c.Ver == nil {
		return 0, false
	}
	return *c.Ver, true
}

func subjectClaim(id uuid.UUID) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: id.String()}
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedTime returns the issued at time
func (c *SessionClaims) IssuedTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
