package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/newsletter/pkg/httpx"
	"github.com/ghuser/newsletter/pkg/logger"
)

const (
	sessionName      = "newsletter_session"
	sessionListIDKey = "list_id"
)

// StartSession stores listID in the session cookie so that subsequent
// requests pass RequireAuth as the owner of that list.
func StartSession(w http.ResponseWriter, r *http.Request, store sessions.Store, listID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	session.Values[sessionListIDKey] = listID.String()
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the list ID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a valid list_id.
//
// After this middleware, handlers can safely call auth.ListIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			listIDStr, ok := session.Values[sessionListIDKey].(string)
			if !ok || listIDStr == "" {
				log.WarnContext(r.Context(), "session missing list_id")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			listID, err := uuid.Parse(listIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid list_id in session", "list_id", listIDStr, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithListID(r.Context(), listID)))
		})
	}
}
