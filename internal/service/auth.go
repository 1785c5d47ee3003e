package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"filevault/internal/device"
	"filevault/internal/logger"
	"filevault/internal/model"
)

// Auth orchestrates sign-up, sign-in, token refresh and session revocation.
type Auth struct {
	users    model.UserStore
	sessions model.SessionStore
	tokens   model.TokenManager
	hasher   model.PasswordHasher
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAuth(
	users model.UserStore,
	sessions model.SessionStore,
	tokens model.TokenManager,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		validate: validator.New(),
		logger:   logger,
	}
}

// SignUp validates the identifier shape, hashes the password and creates
// the user. It issues no tokens.
func (a *Auth) SignUp(ctx context.Context, id, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user sign-up", "id", id)

	if a.validate.Var(id, "email") != nil && a.validate.Var(id, "e164") != nil {
		return model.User{}, model.ErrInvalidIdentifier
	}

	_, err := a.users.GetByID(ctx, id)
	if err == nil {
		a.logger.Info("Auth service: user already exists", "id", id)
		return model.User{}, model.ErrDuplicateUser
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by id",
			"id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{ID: id, PasswordHash: digest})
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user signed up successfully", "id", id)

	return user, nil
}

// SignIn verifies credentials and mints a fresh access/refresh pair bound to
// the calling device. Every successful sign-in creates a new session row;
// sessions on other devices are left untouched.
func (a *Auth) SignIn(ctx context.Context, id, password string, meta device.Metadata) (model.TokenPair, error) {
	a.logger.Debug("Auth service: starting user sign-in", "id", id)

	user, err := a.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		// Same outcome as a wrong password so ids cannot be enumerated.
		return model.TokenPair{}, model.ErrBadCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"id", id,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return model.TokenPair{}, model.ErrBadCredentials
	}

	pair, err := a.issueSession(ctx, user.ID, meta.ID())
	if err != nil {
		return model.TokenPair{}, err
	}

	a.logger.Info("Auth service: user signed in successfully", "id", id)

	return pair, nil
}

// Refresh rotates the session behind a valid refresh token and mints a new
// pair. A presented-but-invalid token is treated as a possible compromise:
// its session is blocked before the caller is rejected.
func (a *Auth) Refresh(ctx context.Context, refreshToken string, meta device.Metadata) (model.TokenPair, error) {
	tokenID, err := a.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		a.blockPresentedToken(ctx, refreshToken)
		return model.TokenPair{}, err
	}

	session, err := a.sessions.GetActiveByTokenID(ctx, tokenID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Warn("Auth service: refresh token not found or blocked", "token_id", tokenID)
		return model.TokenPair{}, model.ErrRefreshTokenNotFound
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get session by token id: %w", err)
	}

	if session.DeviceID != meta.ID() {
		a.logger.Warn("Auth service: device mismatch on refresh", "user_id", session.UserID)
		return model.TokenPair{}, model.ErrDeviceMismatch
	}

	newRefresh, newTokenID, err := a.tokens.GenerateRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if _, err := a.sessions.Rotate(ctx, session.ID, tokenID, newTokenID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Lost a rotation race: another refresh already consumed this token.
			return model.TokenPair{}, model.ErrRefreshTokenNotFound
		}
		return model.TokenPair{}, fmt.Errorf("failed to rotate session: %w", err)
	}

	access, err := a.tokens.GenerateAccessToken(session.UserID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	a.logger.Info("Auth service: tokens refreshed", "user_id", session.UserID)

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: newRefresh,
		UserID:       session.UserID,
	}, nil
}

// Logout blocks every active session for the user on the calling device.
// Blocking zero rows is not an error, so repeated logouts succeed.
func (a *Auth) Logout(ctx context.Context, userID string, meta device.Metadata) error {
	count, err := a.sessions.BlockByUserAndDevice(ctx, userID, meta.ID())
	if err != nil {
		return fmt.Errorf("failed to block sessions: %w", err)
	}

	a.logger.Info("Auth service: user logged out", "user_id", userID, "blocked", count)

	return nil
}

// LogoutAllDevices blocks every active session for the user and returns the
// number of sessions blocked.
func (a *Auth) LogoutAllDevices(ctx context.Context, userID string) (int64, error) {
	count, err := a.sessions.BlockAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to block all sessions: %w", err)
	}

	a.logger.Info("Auth service: user logged out everywhere", "user_id", userID, "blocked", count)

	return count, nil
}

// CleanExpiredTokens purges session rows past the retention window. It is a
// best-effort maintenance task: failures are logged and reported as zero.
func (a *Auth) CleanExpiredTokens(ctx context.Context) int64 {
	cutoff := time.Now().Add(-model.SessionRetention)

	count, err := a.sessions.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		a.logger.Error("Auth service: session purge failed", "error", err.Error())
		return 0
	}

	if count > 0 {
		a.logger.Info("Auth service: purged old sessions", "count", count)
	}

	return count
}

func (a *Auth) issueSession(ctx context.Context, userID, deviceID string) (model.TokenPair, error) {
	access, err := a.tokens.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, tokenID, err := a.tokens.GenerateRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	_, err = a.sessions.Create(ctx, model.Session{
		ID:       uuid.New(),
		UserID:   userID,
		TokenID:  tokenID,
		DeviceID: deviceID,
	})
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to create session: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       userID,
	}, nil
}

func (a *Auth) blockPresentedToken(ctx context.Context, refreshToken string) {
	tokenID, err := a.tokens.PeekRefreshTokenID(refreshToken)
	if err != nil || tokenID == "" {
		return
	}
	if _, err := a.sessions.BlockByTokenID(ctx, tokenID); err != nil {
		a.logger.Error("Auth service: failed to block invalid refresh token",
			"token_id", tokenID,
			"error", err.Error())
	}
}
