package middleware

import (
	"net/http"
	"time"

	"filevault/internal/token"
)

// ExpiryHeader is the advisory response header set when the presented
// access token is about to expire.
const ExpiryHeader = "JWT-Token-Expiring-Soon"

// expiryWarnWindow is how close to expiry a token must be for the header
// to be set.
const expiryWarnWindow = 5 * time.Minute

// ExpiryPeeker decodes a token's expiry without verifying it.
type ExpiryPeeker interface {
	PeekExpiry(token string) (time.Time, error)
}

// ExpiryWarning flags soon-to-expire access tokens on every response so
// clients can refresh proactively. It is purely advisory: it never blocks
// a request and swallows every decode error.
type ExpiryWarning struct {
	tokens ExpiryPeeker
	skip   map[string]struct{}
}

// NewExpiryWarning creates the middleware. Paths in skip (the auth endpoints,
// which carry no access token) are passed through untouched.
func NewExpiryWarning(tokens ExpiryPeeker, skip ...string) *ExpiryWarning {
	skipSet := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipSet[p] = struct{}{}
	}
	return &ExpiryWarning{tokens: tokens, skip: skipSet}
}

// Handle annotates the response and always proceeds.
func (m *ExpiryWarning) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.skip[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		if tok := token.ExtractBearer(r.Header.Get("Authorization")); tok != "" {
			if exp, err := m.tokens.PeekExpiry(tok); err == nil && time.Until(exp) < expiryWarnWindow {
				w.Header().Set(ExpiryHeader, "true")
			}
		}

		next.ServeHTTP(w, r)
	})
}
