package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"filevault/internal/model"
)

// Claims represents JWT claims with token type and user ID.
// Access tokens carry the user id; refresh tokens carry only a random
// token id (RegisteredClaims.ID) that joins them to a session row.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id,omitempty"`
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC with separate
// access and refresh signing keys.
type JWT struct {
	accessSecret  string
	refreshSecret string
}

// NewJWT creates a new JWT token manager with the provided signing keys.
func NewJWT(accessSecret, refreshSecret string) model.TokenManager {
	return &JWT{accessSecret: accessSecret, refreshSecret: refreshSecret}
}

const (
	// AccessTTL is the lifetime of an access token.
	AccessTTL = 10 * time.Minute
	// RefreshTTL is the lifetime of a refresh token.
	RefreshTTL = 7 * 24 * time.Hour

	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token for the user.
func (j *JWT) GenerateAccessToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
		},
		UserID:    userID,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.accessSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token and returns the
// random token id embedded in it. The token id, not the bearer token, is
// what the session store keeps.
func (j *JWT) GenerateRefreshToken() (string, string, error) {
	now := time.Now()
	tokenID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTTL)),
		},
		TokenType: typeRefresh,
	})

	tokenString, err := token.SignedString([]byte(j.refreshSecret))
	if err != nil {
		return "", "", err
	}

	return tokenString, tokenID, nil
}

// ParseAccessToken validates signature and expiry and extracts the user ID.
func (j *JWT) ParseAccessToken(tokenString string) (string, error) {
	claims, err := j.parse(tokenString, j.accessSecret, typeAccess)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// ParseRefreshToken validates signature and expiry and extracts the token ID.
func (j *JWT) ParseRefreshToken(tokenString string) (string, error) {
	claims, err := j.parse(tokenString, j.refreshSecret, typeRefresh)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}

// PeekExpiry decodes the expiry claim without verifying the signature.
// It must never be used for authorization decisions.
func (j *JWT) PeekExpiry(tokenString string) (time.Time, error) {
	claims, err := peek(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, model.ErrTokenMalformed
	}
	return claims.ExpiresAt.Time, nil
}

// PeekRefreshTokenID decodes the token id claim without verifying the
// signature, so a session can still be blocked when an expired or
// tampered refresh token is presented.
func (j *JWT) PeekRefreshTokenID(tokenString string) (string, error) {
	claims, err := peek(tokenString)
	if err != nil {
		return "", err
	}
	if claims.TokenType != typeRefresh || claims.ID == "" {
		return "", model.ErrTokenMalformed
	}
	return claims.ID, nil
}

func (j *JWT) parse(tokenString, secret, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenMalformed
	}
	if !token.Valid || claims.TokenType != wantType {
		return nil, model.ErrTokenMalformed
	}
	return claims, nil
}

func peek(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, model.ErrTokenMalformed
	}
	return claims, nil
}

// ExtractBearer parses an Authorization header value of the form
// "Bearer <token>". It returns the empty string when the header is absent
// or not in bearer form; callers treat that as "no credential", not an error.
func ExtractBearer(headerValue string) string {
	scheme, rest, found := strings.Cut(headerValue, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}
