// Package auth carries the authenticated user through a request context.
package auth

import "context"

type contextKey string

const userIDKey contextKey = "workout-log-user-id"

// WithUserID stores the authenticated user id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// CurrentUserID returns the user id stored by WithUserID. An empty id
// counts as no user.
func CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Identity resolves the current user of a request.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// ContextIdentity resolves identity from values set by WithUserID.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	return CurrentUserID(ctx)
}
