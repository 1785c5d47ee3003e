package model

import "time"

// TokenManager signs and verifies access and refresh credentials.
type TokenManager interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken() (token string, tokenID string, err error)
	ParseAccessToken(token string) (userID string, err error)
	ParseRefreshToken(token string) (tokenID string, err error)
	// PeekExpiry decodes the expiry claim without verifying the signature.
	// Advisory use only, never an authorization input.
	PeekExpiry(token string) (time.Time, error)
	// PeekRefreshTokenID decodes the token id claim without verifying the
	// signature. Used to block the underlying session when an invalid
	// refresh token is presented.
	PeekRefreshTokenID(token string) (string, error)
}

// TokenPair is the result of a successful sign-in or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}
