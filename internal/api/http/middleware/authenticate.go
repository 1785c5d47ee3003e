package middleware

import (
	"context"
	"errors"
	"net/http"

	"filevault/internal/api/http/response"
	"filevault/internal/device"
	"filevault/internal/logger"
	"filevault/internal/model"
	"filevault/internal/token"
)

// TokenParser verifies access tokens and resolves their subject.
type TokenParser interface {
	ParseAccessToken(token string) (string, error)
}

// UserResolver resolves a token subject to a stored user.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (model.User, error)
}

// SessionChecker looks up the calling device's active session.
type SessionChecker interface {
	GetActiveByUserAndDevice(ctx context.Context, userID, deviceID string) (model.Session, error)
}

// Authenticate gatekeeps protected routes: it verifies the presented access
// token, resolves the subject and checks that the device's session has not
// been revoked, then attaches the principal to the request context.
type Authenticate struct {
	tokens   TokenParser
	users    UserResolver
	sessions SessionChecker
	ctxMgr   model.ContextManager
	logger   *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	tokens TokenParser,
	users UserResolver,
	sessions SessionChecker,
	ctxMgr model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		tokens:   tokens,
		users:    users,
		sessions: sessions,
		ctxMgr:   ctxMgr,
		logger:   logger,
	}
}

// Handle rejects the request unless a valid, unrevoked access credential is
// presented.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticate(r)
		if err != nil {
			m.reject(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.ctxMgr.SetUserIDToContext(r.Context(), userID)))
	})
}

// HandleOptional attaches a principal when a valid credential is presented
// and otherwise lets the request through anonymously. It never rejects.
func (m *Authenticate) HandleOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, err := m.authenticate(r); err == nil {
			r = r.WithContext(m.ctxMgr.SetUserIDToContext(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Authenticate) authenticate(r *http.Request) (string, error) {
	tokenString := token.ExtractBearer(r.Header.Get("Authorization"))
	if tokenString == "" {
		return "", model.ErrMissingCredential
	}

	userID, err := m.tokens.ParseAccessToken(tokenString)
	if err != nil {
		return "", err
	}

	ctx := r.Context()

	if _, err := m.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrUnknownSubject
		}
		return "", err
	}

	// A logout blocks the device's session immediately, well before the
	// access token's own expiry. Requiring an active session here is what
	// makes revocation take effect mid-TTL.
	deviceID := device.FromRequest(r).ID()
	if _, err := m.sessions.GetActiveByUserAndDevice(ctx, userID, deviceID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrSessionRevoked
		}
		return "", err
	}

	return userID, nil
}

func (m *Authenticate) reject(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrMissingCredential):
		response.WriteError(w, http.StatusUnauthorized, "access token is missing")
	case errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenMalformed):
		response.WriteError(w, http.StatusUnauthorized, "access token is invalid or expired")
	case errors.Is(err, model.ErrUnknownSubject):
		response.WriteError(w, http.StatusUnauthorized, "user not found")
	case errors.Is(err, model.ErrSessionRevoked):
		response.WriteError(w, http.StatusUnauthorized, "session expired", "sign in again")
	default:
		m.logger.Error("Authenticate middleware: internal error", "error", err.Error())
		response.WriteError(w, http.StatusInternalServerError, "authenticating error")
	}
}
