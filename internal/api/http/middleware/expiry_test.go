package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"filevault/internal/mocks"
	"filevault/internal/model"
)

func expiryRequest(path, token string) *http.Request {
	r := httptest.NewRequest("GET", path, nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestExpiryWarning_Handle(t *testing.T) {
	t.Run("flags a token close to expiry", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)
		tokens.On("PeekExpiry", "closing-token").Return(time.Now().Add(2*time.Minute), nil)

		rec := httptest.NewRecorder()
		NewExpiryWarning(tokens).Handle(noopHandler()).
			ServeHTTP(rec, expiryRequest("/info", "closing-token"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Header().Get(ExpiryHeader))
	})

	t.Run("leaves a fresh token unflagged", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)
		tokens.On("PeekExpiry", "fresh-token").Return(time.Now().Add(9*time.Minute), nil)

		rec := httptest.NewRecorder()
		NewExpiryWarning(tokens).Handle(noopHandler()).
			ServeHTTP(rec, expiryRequest("/info", "fresh-token"))

		assert.Empty(t, rec.Header().Get(ExpiryHeader))
	})

	t.Run("skips configured paths", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)

		rec := httptest.NewRecorder()
		NewExpiryWarning(tokens, "/signin").Handle(noopHandler()).
			ServeHTTP(rec, expiryRequest("/signin", "whatever"))

		assert.Empty(t, rec.Header().Get(ExpiryHeader))
		tokens.AssertNotCalled(t, "PeekExpiry")
	})

	t.Run("ignores requests without a token", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)

		rec := httptest.NewRecorder()
		NewExpiryWarning(tokens).Handle(noopHandler()).
			ServeHTTP(rec, expiryRequest("/info", ""))

		assert.Empty(t, rec.Header().Get(ExpiryHeader))
	})

	t.Run("swallows decode errors", func(t *testing.T) {
		tokens := mocks.NewTokenManager(t)
		tokens.On("PeekExpiry", "garbage").Return(time.Time{}, model.ErrTokenMalformed)

		rec := httptest.NewRecorder()
		NewExpiryWarning(tokens).Handle(noopHandler()).
			ServeHTTP(rec, expiryRequest("/info", "garbage"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(ExpiryHeader))
	})
}
