package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const listIDKey contextKey = "list_id"

// ErrListIDNotFound is returned when no list ID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrListIDNotFound = errors.New("list_id not found in context")

// ListIDFromCtx extracts the newsletter list owned by the authenticated session.
// Returns uuid.Nil and ErrListIDNotFound for unauthenticated requests.
func ListIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	listID, ok := ctx.Value(listIDKey).(uuid.UUID)
	if !ok || listID == uuid.Nil {
		return uuid.Nil, ErrListIDNotFound
	}
	return listID, nil
}

// WithListID returns a new context with the given list ID attached.
func WithListID(ctx context.Context, listID uuid.UUID) context.Context {
	return context.WithValue(ctx, listIDKey, listID)
}
