package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options. Secrets and the secure cookie flag come from
// the environment; everything else about the carriers is fixed per kind.
type Config interface {
	GetAccessSigningKey() string
	GetRefreshSigningKey() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetIssuer() string
	GetAudience() []string
	GetSecureCookies() bool
}

// Projection opts a normally-excluded column into a read.
type Projection string

// ProjectionPasswordHash includes the password hash in the returned user.
// Default reads never select it.
const ProjectionPasswordHash Projection = "password_hash"

// UserDirectory is the credential store capability the session lifecycle
// consumes. Implementations must make IncrementSessionEpoch a single atomic
// update, not a read-modify-write.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string, projections ...Projection) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID, projections ...Projection) (*User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) (*User, error)
	IncrementSessionEpoch(ctx context.Context, id uuid.UUID) (int64, error)
	SessionEpoch(ctx context.Context, id uuid.UUID) (int64, error)
}

// OwnershipLookup resolves the owning user of a mutable catalog resource.
// It returns ErrResourceNotFound when the resource is absent.
type OwnershipLookup interface {
	FindOwnerID(ctx context.Context, resourceID string) (uuid.UUID, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
