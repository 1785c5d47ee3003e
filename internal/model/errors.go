package model

import "errors"

// Storage-level errors.
var (
	// ErrNotFound is returned by stores when the requested row does not
	// exist or does not satisfy the query's preconditions.
	ErrNotFound = errors.New("not found")
)

// Credential and identity errors.
var (
	ErrInvalidIdentifier = errors.New("id must be a valid email or an e164 phone number")
	ErrDuplicateUser     = errors.New("user with this id already exists")
	ErrBadCredentials    = errors.New("bad id or password")
)

// Token errors.
var (
	ErrTokenMalformed       = errors.New("token is malformed")
	ErrTokenExpired         = errors.New("token is expired")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// Session errors.
var (
	// ErrDeviceMismatch marks a refresh token presented from a device other
	// than the one its session was issued to.
	ErrDeviceMismatch = errors.New("device mismatch")
	// ErrSessionRevoked marks a request whose device session has been
	// blocked, e.g. by a logout, while its access token is still valid.
	ErrSessionRevoked = errors.New("session revoked")
)

// Request guard errors.
var (
	ErrMissingCredential = errors.New("access token is missing")
	ErrUnknownSubject    = errors.New("user not found")
)
