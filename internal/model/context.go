package model

import "context"

// ContextManager sets and retrieves the authenticated principal on a
// request context.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID string) context.Context
	GetUserIDFromContext(ctx context.Context) (string, bool)
}
