package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// TokenPair is a freshly issued access/refresh pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult bundles the identity projection with the issued pair.
type LoginResult struct {
	User *User
	TokenPair
}

// Auther orchestrates the session lifecycle: register, login, refresh with
// rotation, global logout, and the identity projection. It raises exactly
// one typed error per failure path and never formats transport responses.
type Auther struct {
	directory UserDirectory
	tokens    TokenService
	logger    Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(directory UserDirectory, tokens TokenService) *Auther {
	return &Auther{
		directory: directory,
		tokens:    tokens,
		logger:    defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register creates the identity at epoch zero and issues an access token so
// the new session is usable immediately. No refresh token is issued until
// the first login.
func (s *Auther) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	exists, err := s.directory.ExistsEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Register email lookup error", "error", err)
		return nil, "", err
	}

	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if id, err := hashid.NewUUID(input.Email); err == nil {
		user.ID = id
	}

	user, err = s.directory.Create(ctx, user)
	if err != nil {
		s.logger.Error("Register create error", "error", err)
		return nil, "", goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	access, err := s.tokens.Issue(TokenKindAccess, &SessionClaims{
		RegisteredClaims: subjectClaim(user.ID),
		Roles:            user.Roles,
	})
	if err != nil {
		return nil, "", err
	}

	return user, access, nil
}

// Login verifies the credentials and issues both token kinds. The refresh
// token embeds the user's current session epoch; unknown email and wrong
// password are indistinguishable to the caller.
func (s *Auther) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.directory.FindByEmail(ctx, email, ProjectionPasswordHash)
	if err != nil {
		if goerrors.Is(err, ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login identity lookup error", "error", err)
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &LoginResult{User: user, TokenPair: *pair}, nil
}

// Refresh rotates the token pair. The old refresh token is superseded, not
// blacklisted; it dies either by expiry or by epoch mismatch after a global
// logout. Missing, expired, invalid, and malformed tokens all collapse to
// ErrUnauthenticated like the gate does; a vanished subject reads the same.
// Only an epoch mismatch is reported distinctly, as ErrSessionRevoked.
func (s *Auther) Refresh(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	if rawRefresh == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.Validate(TokenKindRefresh, rawRefresh)
	if err != nil {
		s.logger.Debug("Refresh token rejected", "error", err)
		return nil, ErrUnauthenticated
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.directory.FindByID(ctx, subject)
	if err != nil {
		if goerrors.Is(err, ErrIdentityNotFound) {
			return nil, ErrUnauthenticated
		}
		s.logger.Error("Refresh identity lookup error", "error", err)
		return nil, err
	}

	if epoch, ok := claims.Epoch(); ok && epoch != user.TokenVersion {
		return nil, ErrSessionRevoked
	}

	return s.issuePair(user)
}

// LogoutAll bumps the caller's session epoch, revoking every outstanding
// refresh token. Unexpired access tokens keep passing the authentication
// gate until they expire on their own.
func (s *Auther) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.directory.IncrementSessionEpoch(ctx, userID); err != nil {
		if goerrors.Is(err, ErrIdentityNotFound) {
			return ErrUnauthenticated
		}
		s.logger.Error("LogoutAll increment error", "error", err)
		return err
	}
	return nil
}

// Me returns the identity projection, password excluded.
func (s *Auther) Me(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.directory.FindByID(ctx, userID)
}

func (s *Auther) issuePair(user *User) (*TokenPair, error) {
	ver := user.TokenVersion

	access, err := s.tokens.Issue(TokenKindAccess, &SessionClaims{
		RegisteredClaims: subjectClaim(user.ID),
		Roles:            user.Roles,
		Ver:              &ver,
	})
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.Issue(TokenKindRefresh, &SessionClaims{
		RegisteredClaims: subjectClaim(user.ID),
		Roles:            user.Roles,
		Ver:              &ver,
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
