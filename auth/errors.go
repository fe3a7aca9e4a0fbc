package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeEmailTaken         = "EMAIL_TAKEN"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeUnauthenticated    = "UNAUTHENTICATED"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeTokenInvalid       = "TOKEN_SIGNATURE_INVALID"
	TextCodeSessionRevoked     = "SESSION_REVOKED"
	TextCodeForbidden          = "FORBIDDEN"
	TextCodeEmptyPassword      = "EMPTY_PASSWORD"
)

// ErrEmailTaken is returned when a registration hits an existing email.
// The message stays generic so the endpoint does not confirm which emails
// are registered.
var ErrEmailTaken = goerrors.New("registration failed", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(goerrors.CodeConflict)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// login endpoint cannot be used for account enumeration.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnauthenticated is the single failure the authentication gate exposes,
// whether the carrier was missing or the token failed verification.
var ErrUnauthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned by the token codec past the exp claim.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when the raw token cannot be parsed.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid is returned when the signature does not verify, including
// tokens of one kind presented under the other kind's secret.
var ErrTokenInvalid = goerrors.New("token signature is invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionRevoked is returned on refresh when the token's embedded epoch
// no longer matches the user's session epoch.
var ErrSessionRevoked = goerrors.New("session revoked", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionRevoked).
	WithCode(goerrors.CodeUnauthorized)

// ErrForbidden is the authorization gate failure.
var ErrForbidden = goerrors.New("insufficient permissions", goerrors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(goerrors.CodeForbidden)

// ErrIdentityNotFound is the error we return for non found identities.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrResourceNotFound is returned by ownership lookups for absent resources.
var ErrResourceNotFound = goerrors.New("resource not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the bcrypt mismatch, kept internal to the
// package; callers surface ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)
