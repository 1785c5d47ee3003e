package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRetention is how long session rows are kept before the janitor
// hard-deletes them. Blocking is soft revocation; purging is separate.
const SessionRetention = 30 * 24 * time.Hour

// SessionStore persists refresh sessions and their revocation state.
type SessionStore interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetActiveByTokenID(ctx context.Context, tokenID string) (Session, error)
	GetActiveByUserAndDevice(ctx context.Context, userID, deviceID string) (Session, error)
	// Rotate replaces the session's token id and refreshes its creation
	// timestamp, but only while the stored token id still equals currentTokenID
	// and the session is not blocked. Returns ErrNotFound when the precondition
	// fails, which makes concurrent rotations single-winner.
	Rotate(ctx context.Context, sessionID uuid.UUID, currentTokenID, newTokenID string) (Session, error)
	BlockByTokenID(ctx context.Context, tokenID string) (int64, error)
	BlockByUserAndDevice(ctx context.Context, userID, deviceID string) (int64, error)
	BlockAllByUser(ctx context.Context, userID string) (int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Session binds a refresh token id to a user and device and carries the
// revocation flag. Blocked rows are retained until purged by the janitor.
type Session struct {
	ID        uuid.UUID
	UserID    string
	TokenID   string
	DeviceID  string
	Blocked   bool
	CreatedAt time.Time
}
