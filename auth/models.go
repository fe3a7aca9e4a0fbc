package auth

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is a role name carried in the user's role set.
type UserRole = string

const (
	// RoleCustomer is the default role granted at registration.
	RoleCustomer UserRole = "customer"
	// RoleAdmin gates catalog mutations and grants ownership overrides.
	RoleAdmin UserRole = "admin"
)

// User is the persisted identity. PasswordHash is excluded from default
// reads (opt in via ProjectionPasswordHash) and never serialized.
// TokenVersion is the session epoch: it moves only on global logout and only
// through an atomic increment.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Roles         []string   `bun:"roles,notnull" json:"roles,omitempty"`
	TokenVersion  int64      `bun:"token_version,notnull,default:0" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasRole checks membership in the user's role set.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// EnsureDefaults fills the id and role set for new records.
func (u *User) EnsureDefaults() *User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{RoleCustomer}
	}
	return u
}
