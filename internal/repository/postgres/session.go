package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"filevault/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) (model.Session, error) {
	const query = `
        INSERT INTO sessions (id, user_id, token_id, device_id, blocked, created_at)
        VALUES ($1, $2, $3, $4, FALSE, NOW())
        RETURNING id, user_id, token_id, device_id, blocked, created_at
    `

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	var saved model.Session
	err := r.db.QueryRow(ctx, query,
		session.ID, session.UserID, session.TokenID, session.DeviceID,
	).Scan(
		&saved.ID, &saved.UserID, &saved.TokenID, &saved.DeviceID, &saved.Blocked, &saved.CreatedAt,
	)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return saved, nil
}

func (r *SessionRepository) GetActiveByTokenID(ctx context.Context, tokenID string) (model.Session, error) {
	const query = `
        SELECT id, user_id, token_id, device_id, blocked, created_at
        FROM sessions WHERE token_id = $1 AND NOT blocked
    `
	var s model.Session
	err := r.db.QueryRow(ctx, query, tokenID).Scan(
		&s.ID, &s.UserID, &s.TokenID, &s.DeviceID, &s.Blocked, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token id: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) GetActiveByUserAndDevice(ctx context.Context, userID, deviceID string) (model.Session, error) {
	// Sign-in is additive, so the same device may have several active rows;
	// the newest one is the relevant session.
	const query = `
        SELECT id, user_id, token_id, device_id, blocked, created_at
        FROM sessions WHERE user_id = $1 AND device_id = $2 AND NOT blocked
        ORDER BY created_at DESC LIMIT 1
    `
	var s model.Session
	err := r.db.QueryRow(ctx, query, userID, deviceID).Scan(
		&s.ID, &s.UserID, &s.TokenID, &s.DeviceID, &s.Blocked, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by user and device: %w", err)
	}
	return s, nil
}

// Rotate is a conditional update: it succeeds only while the row still holds
// currentTokenID and is not blocked, so two refreshes racing on the same
// token have exactly one winner.
func (r *SessionRepository) Rotate(ctx context.Context, sessionID uuid.UUID, currentTokenID, newTokenID string) (model.Session, error) {
	const query = `
        UPDATE sessions SET token_id = $3, created_at = NOW()
        WHERE id = $1 AND token_id = $2 AND NOT blocked
        RETURNING id, user_id, token_id, device_id, blocked, created_at
    `
	var s model.Session
	err := r.db.QueryRow(ctx, query, sessionID, currentTokenID, newTokenID).Scan(
		&s.ID, &s.UserID, &s.TokenID, &s.DeviceID, &s.Blocked, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to rotate session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) BlockByTokenID(ctx context.Context, tokenID string) (int64, error) {
	const query = `UPDATE sessions SET blocked = TRUE WHERE token_id = $1 AND NOT blocked`
	ct, err := r.db.Exec(ctx, query, tokenID)
	if err != nil {
		return 0, fmt.Errorf("failed to block session by token id: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *SessionRepository) BlockByUserAndDevice(ctx context.Context, userID, deviceID string) (int64, error) {
	const query = `UPDATE sessions SET blocked = TRUE WHERE user_id = $1 AND device_id = $2 AND NOT blocked`
	ct, err := r.db.Exec(ctx, query, userID, deviceID)
	if err != nil {
		return 0, fmt.Errorf("failed to block sessions by user and device: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *SessionRepository) BlockAllByUser(ctx context.Context, userID string) (int64, error) {
	const query = `UPDATE sessions SET blocked = TRUE WHERE user_id = $1 AND NOT blocked`
	ct, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to block sessions by user: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *SessionRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE created_at < $1`
	ct, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return ct.RowsAffected(), nil
}
