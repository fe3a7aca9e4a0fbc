package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/goliatone/go-shop/auth"
)

// testConfig implements auth.Config for testing
type testConfig struct {
	accessKey  string
	refreshKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   []string
	secure     bool
}

func newTestConfig() testConfig {
	return testConfig{
		accessKey:  "access-test-secret",
		refreshKey: "refresh-test-secret",
		accessTTL:  15 * time.Minute,
		refreshTTL: 7 * 24 * time.Hour,
		issuer:     "test-issuer",
		audience:   []string{"test-audience"},
	}
}

func (c testConfig) GetAccessSigningKey() string       { return c.accessKey }
func (c testConfig) GetRefreshSigningKey() string      { return c.refreshKey }
func (c testConfig) GetAccessTokenTTL() time.Duration  { return c.accessTTL }
func (c testConfig) GetRefreshTokenTTL() time.Duration { return c.refreshTTL }
func (c testConfig) GetIssuer() string                 { return c.issuer }
func (c testConfig) GetAudience() []string             { return c.audience }
func (c testConfig) GetSecureCookies() bool            { return c.secure }

// testLogger is a no-op auth.Logger
type testLogger struct{}

func (testLogger) Debug(format string, args ...any) {}
func (testLogger) Info(format string, args ...any)  {}
func (testLogger) Error(format string, args ...any) {}

// MockUserDirectory implements auth.UserDirectory for error-path testing
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string, projections ...auth.Projection) (*auth.User, error) {
	args := m.Called(ctx, email, projections)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id uuid.UUID, projections ...auth.Projection) (*auth.User, error) {
	args := m.Called(ctx, id, projections)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserDirectory) ExistsEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*auth.User)
	return record, args.Error(1)
}

func (m *MockUserDirectory) IncrementSessionEpoch(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserDirectory) SessionEpoch(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// memDirectory is an in-memory auth.UserDirectory for lifecycle scenarios
// that span several operations.
type memDirectory struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newMemDirectory() *memDirectory {
	return &memDirectory{users: map[uuid.UUID]*auth.User{}}
}

func (d *memDirectory) FindByEmail(ctx context.Context, email string, projections ...auth.Projection) (*auth.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, user := range d.users {
		if user.Email == email {
			return d.project(user, projections), nil
		}
	}
	return nil, auth.ErrIdentityNotFound
}

func (d *memDirectory) FindByID(ctx context.Context, id uuid.UUID, projections ...auth.Projection) (*auth.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[id]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	return d.project(user, projections), nil
}

func (d *memDirectory) ExistsEmail(ctx context.Context, email string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, user := range d.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (d *memDirectory) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user.EnsureDefaults()
	clone := *user
	d.users[user.ID] = &clone
	return user, nil
}

func (d *memDirectory) IncrementSessionEpoch(ctx context.Context, id uuid.UUID) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[id]
	if !ok {
		return 0, auth.ErrIdentityNotFound
	}
	user.TokenVersion++
	return user.TokenVersion, nil
}

func (d *memDirectory) SessionEpoch(ctx context.Context, id uuid.UUID) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[id]
	if !ok {
		return 0, auth.ErrIdentityNotFound
	}
	return user.TokenVersion, nil
}

func (d *memDirectory) project(user *auth.User, projections []auth.Projection) *auth.User {
	clone := *user
	includeHash := false
	for _, p := range projections {
		if p == auth.ProjectionPasswordHash {
			includeHash = true
		}
	}
	if !includeHash {
		clone.PasswordHash = ""
	}
	return &clone
}

// stubOwnership implements auth.OwnershipLookup with a fixed owner table
type stubOwnership struct {
	owners map[string]uuid.UUID
}

func (s stubOwnership) FindOwnerID(ctx context.Context, resourceID string) (uuid.UUID, error) {
	owner, ok := s.owners[resourceID]
	if !ok {
		return uuid.Nil, auth.ErrResourceNotFound
	}
	return owner, nil
}
