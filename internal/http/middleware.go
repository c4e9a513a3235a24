package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
	"github.com/swdadsa/Shoppping-system-frontend/internal/session"
)

const sessionCookie = "sid"

// SessionMiddleware resolves the visitor's session from the sid cookie
// (or X-Session-ID header) and slides its expiry on every qualifying
// request. Anonymous visitors pass through with an empty session; the
// handlers that need authentication gate on it themselves.
func SessionMiddleware(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionID(r)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Get(r.Context(), sid)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					log.Printf("session lookup failed: %v", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			if err := store.Touch(r.Context(), sid); err != nil && !errors.Is(err, session.ErrNoSession) {
				log.Printf("session touch failed: %v", err)
			}

			ctx := context.WithValue(r.Context(), "session", sess)
			ctx = context.WithValue(ctx, "session_id", sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get("X-Session-ID")
}

func sessionFromContext(ctx context.Context) domain.Session {
	if sess, ok := ctx.Value("session").(domain.Session); ok {
		return sess
	}
	return domain.Session{}
}

func sessionIDFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value("session_id").(string); ok {
		return sid
	}
	return ""
}
