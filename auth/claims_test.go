package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-shop/auth"
)

func TestSessionClaims(t *testing.T) {
	t.Run("UserID returns the subject", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
		}
		assert.Equal(t, "user-123", claims.UserID())
	})

	t.Run("HasRole checks membership", func(t *testing.T) {
		claims := &auth.SessionClaims{Roles: []string{auth.RoleCustomer}}

		assert.True(t, claims.HasRole(auth.RoleCustomer))
		assert.False(t, claims.HasRole(auth.RoleAdmin))
	})

	t.Run("Epoch distinguishes absent from zero", func(t *testing.T) {
		claims := &auth.SessionClaims{}
		_, ok := claims.Epoch()
		assert.False(t, ok)

		zero := int64(0)
		claims.Ver = &zero
		got, ok := claims.Epoch()
		assert.True(t, ok)
		assert.Equal(t, int64(0), got)
	})

	t.Run("Expires handles missing exp", func(t *testing.T) {
		claims := &auth.SessionClaims{}
		assert.True(t, claims.Expires().IsZero())

		exp := time.Now().Add(time.Hour)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
		assert.WithinDuration(t, exp, claims.Expires(), time.Second)
	})

	t.Run("IssuedTime handles missing iat", func(t *testing.T) {
		claims := &auth.SessionClaims{}
		assert.True(t, claims.IssuedTime().IsZero())
	})
}

func TestClaimsContext(t *testing.T) {
	t.Run("round trips through a standard context", func(t *testing.T) {
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
		}

		ctx := auth.WithClaimsContext(context.Background(), claims)

		got, ok := auth.ClaimsFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, claims, got)
	})

	t.Run("missing claims report false", func(t *testing.T) {
		_, ok := auth.ClaimsFromContext(context.Background())
		assert.False(t, ok)
	})
}
